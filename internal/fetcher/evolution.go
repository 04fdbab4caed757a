package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"CasinoTracker/internal/config"
	"CasinoTracker/internal/interfaces"
	"CasinoTracker/internal/model"
	"CasinoTracker/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// FetchError 拉取上游结果失败（网络错误、非2xx、响应不可解析）
type FetchError struct {
	URL        string
	StatusCode int // 0表示未收到HTTP响应
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("拉取%s失败: 状态码%d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("拉取%s失败: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EvolutionFetcher casinoscores game-events接口的ResultFetcher实现
type EvolutionFetcher struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewEvolutionFetcher(cfg *config.ProviderConfig, logger *logrus.Logger) interfaces.ResultFetcher {
	return &EvolutionFetcher{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// FetchLatestResults 拉取一页最新结果。fetchURL来自游戏配置（可自带查询参数），
// 分页与排序参数在此统一覆盖，始终取第0页的最新pageSize条。
func (f *EvolutionFetcher) FetchLatestResults(ctx context.Context, fetchURL string, pageSize int, sortSpec string) ([]model.RawGameResult, error) {
	u, err := url.Parse(fetchURL)
	if err != nil {
		return nil, &FetchError{URL: fetchURL, Err: fmt.Errorf("拉取地址不合法: %w", err)}
	}
	q := u.Query()
	q.Set("page", "0")
	if pageSize > 0 {
		q.Set("size", strconv.Itoa(pageSize))
	}
	if sortSpec != "" {
		q.Set("sort", sortSpec)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: u.String(), StatusCode: resp.StatusCode, Err: fmt.Errorf("上游返回非2xx")}
	}

	var results []model.RawGameResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &FetchError{URL: u.String(), Err: fmt.Errorf("解析响应失败: %w", err)}
	}
	return results, nil
}
