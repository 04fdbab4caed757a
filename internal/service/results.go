package service

import (
	"encoding/json"

	"CasinoTracker/internal/model"
	"CasinoTracker/internal/outcome"
)

// TransformedResult 对外结果feed的单条记录：在原始payload之上覆盖标准化字段，
// 并对中奖玩家昵称脱敏。
type TransformedResult struct {
	ID             string                 `json:"id"`
	Data           map[string]interface{} `json:"data"`
	TransmissionID string                 `json:"transmissionId,omitempty"`
	TotalWinners   *int                   `json:"totalWinners,omitempty"`
	TotalAmount    *float64               `json:"totalAmount,omitempty"`
	Winners        []GameShowWinner       `json:"winners,omitempty"`
}

// TransformGameResult 把数据库中的一条结果转换为API响应格式。
// data以留存的原始payload为底，覆盖标准化后的关键字段（id、时间、状态、结果）。
func TransformGameResult(result *model.GameResult) *TransformedResult {
	data := map[string]interface{}{}
	var dataRaw map[string]interface{}
	if len(result.DataRaw) > 0 {
		if err := json.Unmarshal(result.DataRaw, &dataRaw); err == nil {
			if inner, ok := dataRaw["data"].(map[string]interface{}); ok {
				data = inner
			}
		}
	}

	data["id"] = result.ExternalID
	data["startedAt"] = isoTime(result.StartedAt)
	data["settledAt"] = isoTime(result.SettledAt)
	data["status"] = result.Status
	var resultPayload interface{}
	if len(result.Result) > 0 && json.Unmarshal(result.Result, &resultPayload) == nil {
		data["result"] = resultPayload
	}

	transformed := &TransformedResult{
		ID:           result.ExternalID,
		Data:         data,
		TotalWinners: result.TotalWinners,
		TotalAmount:  result.TotalAmount,
	}

	if dataRaw != nil {
		if tid, ok := dataRaw["transmissionId"].(string); ok {
			transformed.TransmissionID = tid
		}
	}

	for _, w := range decodeWinners(result.Winners) {
		transformed.Winners = append(transformed.Winners, GameShowWinner{
			ScreenName: outcome.TruncateScreenName(w.ScreenName),
			Winnings:   w.Winnings,
		})
	}

	return transformed
}
