package service

import (
	"testing"
	"time"

	"CasinoTracker/internal/model"
)

func TestTransformGameResult(t *testing.T) {
	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	settled := started.Add(45 * time.Second)
	result := &model.GameResult{
		ID:           "row-1",
		CasinoGameID: "g1",
		ExternalID:   "evt-1",
		StartedAt:    started,
		SettledAt:    settled,
		Status:       "Resolved",
		Result:       []byte(`{"outcome": {"maxMultiplier": 25}}`),
		Winners:      []byte(`[{"screenName": "longplayer", "winnings": 300}, {"screenName": "ab", "winnings": 50}]`),
		DataRaw:      []byte(`{"id": "evt-1", "transmissionId": "tx-123", "data": {"id": "evt-1", "status": "Stale", "vendorExtra": "kept"}}`),
	}
	totalWinners := 2
	totalAmount := 350.0
	result.TotalWinners = &totalWinners
	result.TotalAmount = &totalAmount

	got := TransformGameResult(result)
	if got.ID != "evt-1" {
		t.Errorf("ID = %s, want evt-1", got.ID)
	}
	// data以原始payload的data子对象为底，标准化字段覆盖其上
	if got.Data["id"] != "evt-1" {
		t.Errorf("data.id = %v, want evt-1", got.Data["id"])
	}
	if got.Data["status"] != "Resolved" {
		t.Errorf("data.status = %v, want Resolved（数据库值覆盖原始payload的Stale）", got.Data["status"])
	}
	if got.Data["startedAt"] != "2026-08-01T12:00:00.000Z" {
		t.Errorf("data.startedAt = %v, want 2026-08-01T12:00:00.000Z", got.Data["startedAt"])
	}
	if got.Data["settledAt"] != "2026-08-01T12:00:45.000Z" {
		t.Errorf("data.settledAt = %v, want 2026-08-01T12:00:45.000Z", got.Data["settledAt"])
	}
	if got.Data["vendorExtra"] != "kept" {
		t.Errorf("data.vendorExtra = %v, want kept（未建模字段原样透出）", got.Data["vendorExtra"])
	}
	resultMap, ok := got.Data["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("data.result类型 = %T, want map", got.Data["result"])
	}
	if _, ok := resultMap["outcome"]; !ok {
		t.Error("data.result缺少outcome")
	}
	// 原始payload顶层的transmissionId透传
	if got.TransmissionID != "tx-123" {
		t.Errorf("TransmissionID = %q, want tx-123", got.TransmissionID)
	}
	if got.TotalWinners == nil || *got.TotalWinners != 2 {
		t.Errorf("TotalWinners = %v, want 2", got.TotalWinners)
	}
	if got.TotalAmount == nil || *got.TotalAmount != 350 {
		t.Errorf("TotalAmount = %v, want 350", got.TotalAmount)
	}
	// 每个中奖玩家昵称都必须脱敏
	if len(got.Winners) != 2 {
		t.Fatalf("Winners条数 = %d, want 2", len(got.Winners))
	}
	if got.Winners[0].ScreenName != "lon..." {
		t.Errorf("Winners[0].ScreenName = %q, want \"lon...\"", got.Winners[0].ScreenName)
	}
	if got.Winners[1].ScreenName != "ab" {
		t.Errorf("Winners[1].ScreenName = %q, want \"ab\"（短昵称原样）", got.Winners[1].ScreenName)
	}
}

func TestTransformGameResult_MinimalRow(t *testing.T) {
	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	result := &model.GameResult{
		ID:           "row-1",
		CasinoGameID: "g1",
		ExternalID:   "evt-2",
		StartedAt:    started,
		SettledAt:    started.Add(30 * time.Second),
		Status:       "Resolved",
		Result:       []byte(`{}`),
	}

	got := TransformGameResult(result)
	if got.ID != "evt-2" {
		t.Errorf("ID = %s, want evt-2", got.ID)
	}
	// data_raw缺失时data仅含标准化字段
	if got.Data["status"] != "Resolved" {
		t.Errorf("data.status = %v, want Resolved", got.Data["status"])
	}
	if got.TransmissionID != "" {
		t.Errorf("TransmissionID = %q, want 空", got.TransmissionID)
	}
	if got.TotalWinners != nil || got.TotalAmount != nil || got.Winners != nil {
		t.Errorf("可缺省字段应保持nil: %+v", got)
	}
}
