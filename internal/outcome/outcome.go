package outcome

import "encoding/json"

// Outcome 单局结果中的outcome子对象。上游不带类型标签，不同游戏只会填充其中一部分
// 可选子对象，因此全部按指针建模，解释逻辑按字段存在性分派（见parser.go）。
type Outcome struct {
	TopSlot                       *TopSlot     `json:"topSlot,omitempty"`                       // 顶部老虎机格（Crazy Time系）
	WheelResult                   *WheelResult `json:"wheelResult,omitempty"`                   // 转盘结果
	MaxMultiplier                 float64      `json:"maxMultiplier,omitempty"`                 // 本局最高倍数
	IsTopSlotMatchedToWheelResult *bool        `json:"isTopSlotMatchedToWheelResult,omitempty"` // 顶部格是否命中转盘结果
	CashHunt                      *CashHunt    `json:"cashHunt,omitempty"`                      // Cash Hunt子游戏数据
	CrazyBonus                    *CrazyBonus  `json:"crazyBonus,omitempty"`                    // Crazy Bonus子游戏数据
	CoinFlip                      *CoinFlip    `json:"coinFlip,omitempty"`                      // Coin Flip子游戏数据
}

// WheelResult 转盘落点：type为WinningNumber时wheelSector是数字/倍数格，
// 为BonusRound时wheelSector是奖局名（如Pachinko）。
type WheelResult struct {
	Type        string `json:"type,omitempty"`
	WheelSector string `json:"wheelSector,omitempty"`
	IsSugarbomb *bool  `json:"isSugarbomb,omitempty"`
}

// TopSlot 顶部老虎机格
type TopSlot struct {
	Multiplier  float64 `json:"multiplier,omitempty"`
	WheelSector string  `json:"wheelSector,omitempty"`
}

// CashHuntCell Cash Hunt网格单元。multiplier按指针建模以区分缺省与0。
type CashHuntCell struct {
	Symbol     string   `json:"symbol,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

// CashHunt 固定形状的选靶网格（12行×9列）
type CashHunt struct {
	Positions [][]CashHuntCell `json:"positions,omitempty"`
}

// Flapper Crazy Bonus转轮指针落点
type Flapper struct {
	Symbol     string  `json:"symbol,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// CrazyBonus Crazy Bonus子游戏
type CrazyBonus struct {
	Flapper *Flapper `json:"flapper,omitempty"`
}

// CoinFlip Coin Flip子游戏
type CoinFlip struct {
	Symbol     string  `json:"symbol,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// resultEnvelope 存储的result列形如 {"outcome": {...}, ...}
type resultEnvelope struct {
	Outcome *Outcome `json:"outcome"`
}

// Decode 从存储的result payload中解出outcome。payload缺失、非对象或无outcome
// 字段时返回nil——这不是错误，只表示该局不产生任何可派生事实。
func Decode(raw []byte) *Outcome {
	if len(raw) == 0 {
		return nil
	}
	var env resultEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return env.Outcome
}
