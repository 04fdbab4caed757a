package outcome

// 本文件是纯函数集合：把一个异构的outcome payload解释为标准化事实。
// 判定全部基于字段存在性（上游不稳定输出类型标签），规则逐条列出，不依赖网络与存储。

// SpinOutcomeUnknown 转盘结果完全缺失时的兜底标签
const SpinOutcomeUnknown = "Unknown"

// WheelResultLabel 标准化的转盘结果标签。
// 规则依次为：
//  1. type==WinningNumber且有sector → 返回sector（数字/倍数格）；
//  2. 否则有type → 返回type；
//  3. 否则有sector → 返回sector；
//  4. 都没有 → 本局无转盘结果，返回false。
func WheelResultLabel(o *Outcome) (string, bool) {
	if o == nil || o.WheelResult == nil {
		return "", false
	}
	wr := o.WheelResult
	if wr.Type == "WinningNumber" && wr.WheelSector != "" {
		return wr.WheelSector, true
	}
	if wr.Type != "" {
		return wr.Type, true
	}
	if wr.WheelSector != "" {
		return wr.WheelSector, true
	}
	return "", false
}

// SpinOutcomeLabel 单局的对外展示标签。
// BonusRound且有sector时返回奖局名（如"Pachinko"），否则退回WheelResultLabel，
// 两者都缺失时返回字面量"Unknown"。
func SpinOutcomeLabel(o *Outcome) string {
	if o == nil || o.WheelResult == nil {
		return SpinOutcomeUnknown
	}
	wr := o.WheelResult
	if wr.Type == "BonusRound" && wr.WheelSector != "" {
		return wr.WheelSector
	}
	if label, ok := WheelResultLabel(o); ok {
		return label
	}
	return SpinOutcomeUnknown
}

// redNumbers 欧式单零轮盘的红色号码集合（不处理美式双零）
var redNumbers = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// RouletteColor 轮盘号码的颜色：0为Green，红色集合内为Red，其余1–36为Black。
func RouletteColor(number int) string {
	if number == 0 {
		return "Green"
	}
	if _, ok := redNumbers[number]; ok {
		return "Red"
	}
	return "Black"
}

// TruncateScreenName 玩家昵称脱敏：超过5个字符时只保留前3个字符加"..."。
// 按rune计数和截断，多字节昵称不能切出半个字符。
// 所有对外展示昵称的地方都必须走这里。
func TruncateScreenName(screenName string) string {
	runes := []rune(screenName)
	if len(runes) > 5 {
		return string(runes[:3]) + "..."
	}
	return screenName
}
