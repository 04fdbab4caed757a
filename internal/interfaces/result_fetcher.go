package interfaces

import (
	"context"

	"CasinoTracker/internal/model"
)

// ResultFetcher 结果拉取契约：给定某个游戏的拉取地址，返回一页原始结果。
// 失败以带类型的fetch错误返回，绝不panic。
type ResultFetcher interface {
	FetchLatestResults(ctx context.Context, fetchURL string, pageSize int, sortSpec string) ([]model.RawGameResult, error)
}
