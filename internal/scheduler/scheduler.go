package scheduler

import (
	"context"

	"CasinoTracker/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler 进程持有的同步调度器：启动时立即跑一轮，之后按cron表达式周期触发。
// 不做周期间互斥——慢周期与下一次触发重叠时由幂等upsert保证正确性，
// 也不对在途周期做取消。
type Scheduler struct {
	cron        *cron.Cron
	syncService *service.SyncService
	spec        string
	logger      *logrus.Logger
}

func New(syncService *service.SyncService, spec string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		syncService: syncService,
		spec:        spec,
		logger:      logger,
	}
}

// Start 注册周期任务并启动。首轮同步异步执行，不阻塞调用方启动流程。
func (s *Scheduler) Start(ctx context.Context) error {
	go s.runOnce(ctx)

	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Infof("同步调度器已启动，周期: %s", s.spec)
	return nil
}

// Stop 停止调度并等待在途周期结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("同步调度器已停止")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.syncService.RunSyncCycle(ctx); err != nil {
		// 只有游戏列表查询失败会走到这里，单游戏/单条结果的失败已在服务内消化
		s.logger.WithError(err).Error("同步周期执行失败，等待下一轮")
	}
}
