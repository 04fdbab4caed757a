package model

import (
	"time"

	"gorm.io/datatypes"
)

// CasinoGame 被追踪的真人游戏秀（由种子数据创建，正常运行期间不删除）
type CasinoGame struct {
	ID              string         `gorm:"column:id;type:varchar(64);primaryKey;comment:全局唯一ID"`
	Name            string         `gorm:"column:name;type:varchar(128);not null;comment:展示名称"`
	APIName         string         `gorm:"column:api_name;type:varchar(64);uniqueIndex;not null;comment:上游API标识"`
	Logo            *string        `gorm:"column:logo;type:varchar(256);comment:Logo地址"`
	Provider        *string        `gorm:"column:provider;type:varchar(64);comment:游戏提供商"`
	Description     *string        `gorm:"column:description;type:text;comment:描述"`
	Category        string         `gorm:"column:category;type:varchar(32);not null;comment:游戏分类"`
	IsNew           bool           `gorm:"column:is_new;type:boolean;default:false;comment:是否新游戏"`
	ReleaseDate     *string        `gorm:"column:release_date;type:varchar(32);comment:上线日期"`
	RTP             *string        `gorm:"column:rtp;type:varchar(16);comment:返还率"`
	Features        datatypes.JSON `gorm:"column:features;type:jsonb;comment:特性列表"`
	FetchResultsURL *string        `gorm:"column:fetch_results_url;type:varchar(512);comment:结果拉取地址，为空则不参与同步"`
	CreatedAt       time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// GameResult 单局已结算的游戏结果。
// 自然键为(casino_game_id, external_id)：external_id是上游局号，仅在单个游戏内唯一。
// 同一键重复摄取时更新可变字段（上游结算后可能修正status/winners），绝不产生重复行。
type GameResult struct {
	ID           string         `gorm:"column:id;type:varchar(64);primaryKey;comment:全局唯一ID"`
	CasinoGameID string         `gorm:"column:casino_game_id;type:varchar(64);not null;uniqueIndex:uk_game_external;comment:关联游戏ID"`
	ExternalID   string         `gorm:"column:external_id;type:varchar(64);not null;uniqueIndex:uk_game_external;comment:上游局号"`
	StartedAt    time.Time      `gorm:"column:started_at;type:timestamp;not null;comment:开局时间"`
	SettledAt    time.Time      `gorm:"column:settled_at;type:timestamp;not null;index;comment:结算时间"`
	Status       string         `gorm:"column:status;type:varchar(32);not null;comment:上游状态"`
	Result       datatypes.JSON `gorm:"column:result;type:jsonb;not null;comment:结果payload（含outcome）"`
	Winners      datatypes.JSON `gorm:"column:winners;type:jsonb;comment:中奖玩家列表"`
	TotalWinners *int           `gorm:"column:total_winners;type:int;comment:中奖人数"`
	TotalAmount  *float64       `gorm:"column:total_amount;type:numeric(18,2);comment:派彩总额"`
	DataRaw      datatypes.JSON `gorm:"column:data_raw;type:jsonb;comment:上游原始payload，留作回放审计"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (CasinoGame) TableName() string { return "casino_games" }
func (GameResult) TableName() string { return "game_results" }
