package janitor

import (
	"github.com/robfig/cron/v3"

	"orbitpaws/pkg/logger"
)

// SessionSweeper - источник операции уборки простаивающих сессий
type SessionSweeper interface {
	SweepIdleSessions(onEvict func(sessionID string)) int
}

// Janitor периодически выметает простаивающие сессии просмотра
// Сохраненное в Redis состояние не трогает: его ограничивает TTL ключей
type Janitor struct {
	cron    *cron.Cron
	sweeper SessionSweeper
	onEvict func(sessionID string)
}

// New создает janitor; onEvict вызывается для каждой выметенной сессии
// (освобождение сопутствующего состояния, например in-memory корзины)
func New(sweeper SessionSweeper, onEvict func(sessionID string)) *Janitor {
	return &Janitor{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		onEvict: onEvict,
	}
}

// Start регистрирует задачу уборки по cron-расписанию и запускает планировщик
func (j *Janitor) Start(schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting session janitor")

	_, err := j.cron.AddFunc(schedule, func() {
		swept := j.sweeper.SweepIdleSessions(j.onEvict)
		if swept > 0 {
			logger.Info().Int("swept", swept).Msg("Session sweep completed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

// Stop останавливает планировщик, дожидаясь завершения текущей задачи
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Session janitor stopped")
}

// Entries возвращает зарегистрированные cron-задачи
func (j *Janitor) Entries() []cron.Entry {
	return j.cron.Entries()
}
