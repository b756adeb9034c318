package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		SwaggerFile string `default:"" env:"APP_SWAGGER_FILE"`
		BodyLimit   int64  `default:"1048576" env:"APP_BODY_LIMIT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"docflow" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Workflow struct {
		HistoryLimit            int   `default:"0" env:"WORKFLOW_HISTORY_LIMIT"` // 0 - no cap
		NotifyEnabled           *bool `default:"true" env:"WORKFLOW_NOTIFY_ENABLED"`
		ReminderEnabled         *bool `default:"false" env:"WORKFLOW_REMINDER_ENABLED"`
		ReminderIntervalMinutes int   `default:"60" env:"WORKFLOW_REMINDER_INTERVAL_MINUTES"`
		ReminderAfterHours      int   `default:"48" env:"WORKFLOW_REMINDER_AFTER_HOURS"`
	}
	NotifyBot struct {
		ErrAddr string `default:"" env:"NOTIFY_BOT_ERR_ADDR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
