package clothing

import (
	"context"
	"errors"
	"io"
	"net/http"

	"clothing-combiner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Combiner 合成服務
type Combiner interface {
	Combine(ctx context.Context, req common.CombineRequest) (*common.CombineResponse, error)
}

// Handler 服裝合成處理器
type Handler struct {
	combiner Combiner
}

// NewHandler 創建處理器
func NewHandler(combiner Combiner) *Handler {
	return &Handler{combiner: combiner}
}

// HandleCombine 處理 /combine-clothing
func (h *Handler) HandleCombine(c *gin.Context) {
	requestID := requestid.Get(c)

	var req common.CombineRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.fail(c, requestID, common.ErrBodyTooLarge)
			return
		}
		if !errors.Is(err, io.EOF) {
			common.LogWarn("請求格式無效",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
		}
		// 無法解析的內容等同於缺少欄位
		h.fail(c, requestID, common.ErrMissingURLs)
		return
	}

	resp, err := h.combiner.Combine(c.Request.Context(), req)
	if err != nil {
		ce, ok := common.AsCustomError(err)
		if !ok {
			ce = common.NewProcessingError(err)
		}
		h.fail(c, requestID, ce)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, requestID string, ce *common.CustomError) {
	_ = c.Error(ce)
	common.LogWarn("合成請求失敗",
		zap.String("request_id", requestID),
		zap.String("code", ce.Code),
		zap.Int("status", ce.Status),
		zap.String("error", ce.Message),
	)
	c.JSON(ce.Status, common.NewFailureResponse(ce))
}
