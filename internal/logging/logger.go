package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fittrack/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// rotation settings for the log file
const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 10
)

// sentryLevels are forwarded to sentry when it is enabled.
var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger: format, level, sentry hook and output.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		setupSentry(params)
	}

	out, desc := logOutput(params)
	logrus.SetOutput(out)
	logrus.Infof("writing logs to %s", desc)
}

func setupSentry(params LoggerSetupParams) {
	if err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	}); err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}
	logrus.AddHook(NewSentryHook(sentryLevels))
	logrus.Infoln("sentry hook registered")
}

func logOutput(params LoggerSetupParams) (io.Writer, string) {
	if params.LogFileName == "" {
		return os.Stdout, "stdout"
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	// UTC timestamps in rotated file names
	rotating := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	}
	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, rotating), fileName + " and stdout"
	}
	return rotating, fileName
}

// GetLevel parses a level name, falling back to info for unknown names.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
