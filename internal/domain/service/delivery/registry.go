package delivery

import "sync"

// Имена задач, которые регистрируются в реестре.
const TaskDeliver = "deliver"

// TaskRegistry — процессный реестр выполняющихся задач по серверам.
// Защищает от параллельного запуска одной и той же задачи для одного
// сервера (ручное обновление поверх планового и наоборот).
type TaskRegistry struct {
	mu    sync.Mutex
	tasks map[int64]map[string]struct{}
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		tasks: make(map[int64]map[string]struct{}),
	}
}

// Acquire помечает задачу выполняющейся. Возвращает false, если такая
// задача для этого сервера уже идёт.
func (r *TaskRegistry) Acquire(guildID int64, task string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.tasks[guildID]
	if !ok {
		set = make(map[string]struct{})
		r.tasks[guildID] = set
	}

	if _, running := set[task]; running {
		return false
	}

	set[task] = struct{}{}

	return true
}

// Release снимает пометку. Снятие невыставленной пометки безвредно.
func (r *TaskRegistry) Release(guildID int64, task string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.tasks[guildID]
	if !ok {
		return
	}

	delete(set, task)

	if len(set) == 0 {
		delete(r.tasks, guildID)
	}
}

func (r *TaskRegistry) IsRunning(guildID int64, task string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, running := r.tasks[guildID][task]

	return running
}
