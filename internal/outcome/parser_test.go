package outcome

import (
	"testing"
	"unicode/utf8"
)

func TestWheelResultLabel(t *testing.T) {
	tests := []struct {
		name    string
		outcome *Outcome
		want    string
		wantOK  bool
	}{
		{
			name:    "nil outcome",
			outcome: nil,
			want:    "",
			wantOK:  false,
		},
		{
			name:    "no wheel result",
			outcome: &Outcome{MaxMultiplier: 10},
			want:    "",
			wantOK:  false,
		},
		{
			name:    "winning number uses sector",
			outcome: &Outcome{WheelResult: &WheelResult{Type: "WinningNumber", WheelSector: "5"}},
			want:    "5",
			wantOK:  true,
		},
		{
			name:    "bonus round uses type",
			outcome: &Outcome{WheelResult: &WheelResult{Type: "BonusRound", WheelSector: "Pachinko"}},
			want:    "BonusRound",
			wantOK:  true,
		},
		{
			name:    "winning number without sector falls back to type",
			outcome: &Outcome{WheelResult: &WheelResult{Type: "WinningNumber"}},
			want:    "WinningNumber",
			wantOK:  true,
		},
		{
			name:    "sector only",
			outcome: &Outcome{WheelResult: &WheelResult{WheelSector: "10"}},
			want:    "10",
			wantOK:  true,
		},
		{
			name:    "empty wheel result",
			outcome: &Outcome{WheelResult: &WheelResult{}},
			want:    "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WheelResultLabel(tt.outcome)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("WheelResultLabel() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWheelResultLabelIsPure(t *testing.T) {
	o := &Outcome{WheelResult: &WheelResult{Type: "WinningNumber", WheelSector: "2"}}
	first, _ := WheelResultLabel(o)
	for i := 0; i < 10; i++ {
		got, _ := WheelResultLabel(o)
		if got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}

func TestSpinOutcomeLabel(t *testing.T) {
	tests := []struct {
		name    string
		outcome *Outcome
		want    string
	}{
		{
			name:    "nil outcome",
			outcome: nil,
			want:    "Unknown",
		},
		{
			name:    "bonus round uses sector name",
			outcome: &Outcome{WheelResult: &WheelResult{Type: "BonusRound", WheelSector: "Pachinko"}},
			want:    "Pachinko",
		},
		{
			name:    "winning number falls back to wheel result label",
			outcome: &Outcome{WheelResult: &WheelResult{Type: "WinningNumber", WheelSector: "1"}},
			want:    "1",
		},
		{
			name:    "empty wheel result is unknown",
			outcome: &Outcome{WheelResult: &WheelResult{}},
			want:    "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpinOutcomeLabel(tt.outcome); got != tt.want {
				t.Errorf("SpinOutcomeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouletteColor(t *testing.T) {
	if got := RouletteColor(0); got != "Green" {
		t.Errorf("RouletteColor(0) = %q, want Green", got)
	}
	if got := RouletteColor(7); got != "Red" {
		t.Errorf("RouletteColor(7) = %q, want Red", got)
	}
	if got := RouletteColor(8); got != "Black" {
		t.Errorf("RouletteColor(8) = %q, want Black", got)
	}

	// 0–36上必须是全函数，只产出三种颜色
	for n := 0; n <= 36; n++ {
		switch RouletteColor(n) {
		case "Green", "Red", "Black":
		default:
			t.Errorf("RouletteColor(%d) produced unexpected color", n)
		}
	}
}

func TestTruncateScreenName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "ab"},
		{"abcde", "abcde"},
		{"abcdef", "abc..."},
		{"longscreenname", "lon..."},
		// 多字节昵称按rune截断，不得切出半个字符
		{"ééééée", "ééé..."},
		{"玩家昵称很长啊", "玩家昵..."},
		{"日本語", "日本語"},
	}

	for _, tt := range tests {
		got := TruncateScreenName(tt.in)
		if got != tt.want {
			t.Errorf("TruncateScreenName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if utf8.RuneCountInString(got) > 6 {
			t.Errorf("TruncateScreenName(%q) rune length %d exceeds 6", tt.in, utf8.RuneCountInString(got))
		}
		if !utf8.ValidString(got) {
			t.Errorf("TruncateScreenName(%q) = %q 含无效UTF-8", tt.in, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
	}{
		{name: "empty payload", raw: "", wantNil: true},
		{name: "not json", raw: "not-json", wantNil: true},
		{name: "no outcome key", raw: `{"total": 3}`, wantNil: true},
		{name: "with outcome", raw: `{"outcome":{"maxMultiplier":25,"wheelResult":{"type":"WinningNumber","wheelSector":"5"}}}`, wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.raw))
			if (got == nil) != tt.wantNil {
				t.Fatalf("Decode() nil = %v, want %v", got == nil, tt.wantNil)
			}
		})
	}

	o := Decode([]byte(`{"outcome":{"maxMultiplier":25,"wheelResult":{"type":"WinningNumber","wheelSector":"5"}}}`))
	if o.MaxMultiplier != 25 {
		t.Errorf("MaxMultiplier = %v, want 25", o.MaxMultiplier)
	}
	if label, ok := WheelResultLabel(o); !ok || label != "5" {
		t.Errorf("WheelResultLabel = (%q, %v), want (5, true)", label, ok)
	}
}
