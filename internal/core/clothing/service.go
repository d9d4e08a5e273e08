package clothing

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"clothing-combiner/internal/core/compose"
	"clothing-combiner/internal/pkg/common"

	"go.uber.org/zap"
)

// Fetcher 下載圖片位元組
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Compositor 合成兩張圖片
type Compositor interface {
	Compose(upper, lower []byte, cfg compose.LayoutConfig) (*compose.Result, error)
}

// Service 上下身圖片合成服務
type Service struct {
	fetcher       Fetcher
	compositor    Compositor
	defaultPreset string
}

// NewService 創建合成服務
func NewService(fetcher Fetcher, compositor Compositor, defaultPreset string) (*Service, error) {
	if _, ok := compose.Preset(defaultPreset); !ok {
		return nil, fmt.Errorf("unknown default layout preset: %s", defaultPreset)
	}
	return &Service{
		fetcher:       fetcher,
		compositor:    compositor,
		defaultPreset: defaultPreset,
	}, nil
}

// DefaultPreset 回傳預設版面名稱
func (s *Service) DefaultPreset() string {
	return s.defaultPreset
}

// Combine 下載上下身圖片並合成，錯誤皆為 *common.CustomError
func (s *Service) Combine(ctx context.Context, req common.CombineRequest) (*common.CombineResponse, error) {
	upperURL := strings.TrimSpace(req.UpperURL)
	lowerURL := strings.TrimSpace(req.LowerURL)
	if upperURL == "" || lowerURL == "" {
		return nil, common.ErrMissingURLs
	}

	presetName := req.Preset
	if presetName == "" {
		presetName = s.defaultPreset
	}
	layout, ok := compose.Preset(presetName)
	if !ok {
		return nil, common.NewUnknownPresetError(presetName)
	}

	common.LogInfo("開始處理合成請求",
		zap.String("upper_url", common.Truncate(upperURL, 50)),
		zap.String("lower_url", common.Truncate(lowerURL, 50)),
		zap.String("preset", presetName),
	)

	start := time.Now()
	upper, err := s.fetcher.Fetch(ctx, upperURL)
	if err != nil {
		return nil, fetchError(ctx, err)
	}
	lower, err := s.fetcher.Fetch(ctx, lowerURL)
	if err != nil {
		return nil, fetchError(ctx, err)
	}
	fetchLatency := time.Since(start)

	// 下載耗盡請求時限時不再合成
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, common.ErrRequestTimeout
	}

	result, err := s.compositor.Compose(upper, lower, layout)
	if err != nil {
		var sizeErr *compose.SizeError
		if errors.As(err, &sizeErr) {
			return nil, common.NewImageTooSmallError(err)
		}
		common.LogError("圖片合成失敗",
			zap.Error(err),
			zap.String("preset", presetName),
		)
		return nil, common.NewProcessingError(err)
	}

	encoded := base64.StdEncoding.EncodeToString(result.Image)

	common.LogInfo("合成完成",
		zap.String("canvas_size", common.FormatSize(result.Width, result.Height)),
		zap.String("preset", presetName),
		zap.Int("encoded_length", len(encoded)),
		zap.Duration("fetch_latency", fetchLatency),
		zap.Duration("total_latency", time.Since(start)),
	)

	return &common.CombineResponse{
		Success:             true,
		CombinedImageBase64: encoded,
		CombinedImageURL:    "data:image/jpeg;base64," + encoded,
		CanvasSize:          common.FormatSize(result.Width, result.Height),
		Layout:              result.Layout,
		UpperPosition:       common.FormatPoint(result.Upper.X, result.Upper.Y),
		LowerPosition:       common.FormatPoint(result.Lower.X, result.Lower.Y),
		Arrangement:         result.Arrangement,
		Preset:              result.Preset,
		QualityInfo:         fmt.Sprintf("High quality: %dx%dpx", result.Width, result.Height),
		UpperOriginalSize:   result.UpperOriginal.String(),
		LowerOriginalSize:   result.LowerOriginal.String(),
		SeparatorWidth:      result.SeparatorWidth,
	}, nil
}

// fetchError 請求時限已到時回報逾時，否則為下載失敗
func fetchError(ctx context.Context, err error) *common.CustomError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		common.LogWarn("下載時請求逾時", zap.Error(err))
		return common.ErrRequestTimeout
	}
	return common.NewDownloadError(err)
}
