package local_fs

type Config struct {
	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/uploads"
	}
	return &LocalFS{
		Config: conf,
	}, nil
}
