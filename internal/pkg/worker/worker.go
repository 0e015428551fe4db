package worker

import (
	"time"

	"marketplace_api/pkg/logger"

	"go.uber.org/zap"
)

// Task is a unit of async work, typically a notification write + push.
type Task struct {
	Name  string
	Run   func() error
	Retry int
}

// Pool is a bounded worker pool with a delayed retry queue. Order and
// payment flows enqueue notification fan-out here so the HTTP response
// never waits on it.
type Pool struct {
	taskQueue  chan Task
	retryQueue chan Task
	workerNum  int
	maxRetry   int
}

func NewPool(workerNum, bufferSize int) *Pool {
	return &Pool{
		taskQueue:  make(chan Task, bufferSize),
		retryQueue: make(chan Task, bufferSize/2),
		workerNum:  workerNum,
		maxRetry:   3,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	logger.Log.Info("Worker pool started", zap.Int("workers", p.workerNum))
}

func (p *Pool) worker(id int) {
	for task := range p.taskQueue {
		if err := task.Run(); err != nil {
			logger.Log.Warn("Worker task failed",
				zap.Int("worker", id),
				zap.String("task", task.Name),
				zap.Int("attempt", task.Retry),
				zap.Error(err))

			if task.Retry < p.maxRetry {
				task.Retry++
				select {
				case p.retryQueue <- task:
				default:
					p.logDropped(task, err)
				}
			} else {
				p.logDropped(task, err)
			}
		}
	}
}

func (p *Pool) retryWorker() {
	for task := range p.retryQueue {
		// Back off before re-queueing.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.taskQueue <- task:
		default:
			p.logDropped(task, nil)
		}
	}
}

// Submit enqueues a task, dropping it when the queue is saturated.
func (p *Pool) Submit(task Task) {
	select {
	case p.taskQueue <- task:
	default:
		p.logDropped(task, nil)
	}
}

func (p *Pool) logDropped(task Task, err error) {
	logger.Log.Error("Worker task dropped",
		zap.String("task", task.Name),
		zap.Int("attempt", task.Retry),
		zap.Error(err))
}
