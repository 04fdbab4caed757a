package model

import (
	"encoding/json"
	"time"
)

// RawWinner 上游payload中的单个中奖玩家
type RawWinner struct {
	ScreenName string  `json:"screenName"` // 玩家昵称（对外展示前必须截断）
	Winnings   float64 `json:"winnings"`   // 中奖金额
}

// RawGameData 上游payload的data子对象
type RawGameData struct {
	ID        string          `json:"id"`        // 局号（与外层id一致）
	StartedAt time.Time       `json:"startedAt"` // 开局时间
	SettledAt time.Time       `json:"settledAt"` // 结算时间
	Status    string          `json:"status"`    // 局状态（Resolved等，上游定义）
	Result    json.RawMessage `json:"result"`    // 结果对象，形状随游戏类型变化，原样保留
}

// RawGameResult 上游game-events接口返回的单局结果。
// 不同游戏的result形状互不相同，解析交给outcome包按字段存在性判断。
type RawGameResult struct {
	ID           string      `json:"id"` // 上游局号，即external_id
	Data         RawGameData `json:"data"`
	TotalWinners *int        `json:"totalWinners,omitempty"` // 中奖人数（可缺省）
	TotalAmount  *float64    `json:"totalAmount,omitempty"`  // 派彩总额（可缺省）
	Winners      []RawWinner `json:"winners,omitempty"`      // 中奖玩家列表（可缺省）

	// Raw 上游返回的原始字节。data_raw列必须存原始payload而非结构体重编码，
	// 否则未建模字段（如transmissionId）会丢失。
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON 解码时同时留存原始字节，供data_raw回放审计使用
func (r *RawGameResult) UnmarshalJSON(data []byte) error {
	type plain RawGameResult // 去掉方法集，避免递归解码
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RawGameResult(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}
