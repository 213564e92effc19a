package conf

type Config struct {
	IntervalIndex int
	CPUWindow     string
	Scheduler     Scheduler
	Display       Display
	Web           Web
	Log           Log
}

type Scheduler struct {
	Command string
	Args    []string
	Skip    int
	Take    int
}

type Display struct {
	Terminal    bool
	ClearScreen bool
}

type Web struct {
	Enabled  bool
	Addr     string
	RootPath string
}

type Log struct {
	Level  string
	Format string
}
