package lib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogDirectory = "logs"
	LogFileName  = "log"
)

/*
	Leveled, colored logging for the simulator.
	Each simulated chain logs through its own tagged copy (see WithTag) so interleaved cross-chain
	deliveries stay readable. Without a configured writer, output goes to stdout and a rotating file.
*/

func init() {
	color.NoColor = false
}

// LoggerI defines the interface for various logging levels and formatted output
type LoggerI interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Print(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Printf(format string, args ...interface{})
	WithTag(tag string) LoggerI
}

const (
	DebugLevel int32 = -4
	InfoLevel  int32 = 0
	WarnLevel  int32 = 4
	ErrorLevel int32 = 8
)

// logLevel pairs a threshold with the label and color used to print it
type logLevel struct {
	threshold int32
	label     string
	paint     func(format string, a ...interface{}) string
}

var (
	debugLvl = logLevel{DebugLevel, "DEBUG", color.BlueString}
	infoLvl  = logLevel{InfoLevel, "INFO", color.GreenString}
	warnLvl  = logLevel{WarnLevel, "WARN", color.YellowString}
	errorLvl = logLevel{ErrorLevel, "ERROR", color.RedString}
	fatalLvl = logLevel{ErrorLevel, "FATAL", color.RedString}

	_ LoggerI = &Logger{}
)

// LoggerConfig holds configuration settings for the logger, including logging level and output writer
type LoggerConfig struct {
	Level int32 `json:"level"`
	Out   io.Writer
}

// Logger is the concrete implementation of LoggerI
type Logger struct {
	config LoggerConfig
	tag    string      // printed before each message (ex. 'chain-2')
	mu     *sync.Mutex // shared by tagged copies writing to the same output
}

func (l *Logger) Debug(msg string) { l.log(debugLvl, msg) }
func (l *Logger) Info(msg string)  { l.log(infoLvl, msg) }
func (l *Logger) Warn(msg string)  { l.log(warnLvl, msg) }
func (l *Logger) Error(msg string) { l.log(errorLvl, msg) }
func (l *Logger) Print(msg string) { l.write(msg) }

// Fatal() logs the message and exits the process
func (l *Logger) Fatal(msg string) {
	l.log(fatalLvl, msg)
	os.Exit(1)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(debugLvl, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(infoLvl, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(warnLvl, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(errorLvl, format, args...) }
func (l *Logger) Printf(format string, args ...interface{}) { l.write(fmt.Sprintf(format, args...)) }

// Fatalf() logs the formatted message and exits the process
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logf(fatalLvl, format, args...)
	os.Exit(1)
}

// WithTag() returns a copy of the logger that prefixes every line with the tag
func (l *Logger) WithTag(tag string) LoggerI {
	return &Logger{config: l.config, tag: tag, mu: l.mu}
}

func (l *Logger) logf(lvl logLevel, format string, args ...interface{}) {
	if l.config.Level > lvl.threshold {
		return
	}
	l.log(lvl, fmt.Sprintf(format, args...))
}

// log() paints each line of the message so multi-line output keeps its color
func (l *Logger) log(lvl logLevel, msg string) {
	if l.config.Level > lvl.threshold {
		return
	}
	lines := strings.Split(lvl.label+": "+msg, "\n")
	for i := range lines {
		lines[i] = lvl.paint("%s", lines[i])
	}
	l.write(strings.Join(lines, "\n"))
}

// write() timestamps the line and sends it to the configured output
func (l *Logger) write(msg string) {
	prefix := color.HiBlackString(time.Now().Format(time.StampMilli))
	if l.tag != "" {
		prefix += " " + color.CyanString("[%s]", l.tag)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := fmt.Fprintf(l.config.Out, "%s %s\n", prefix, msg); err != nil {
		fmt.Printf("logger.write() failed with err: %s\n", err.Error())
	}
}

// NewLogger() creates a Logger; a nil writer logs to stdout and to a rotating file under the data directory
func NewLogger(config LoggerConfig, dataDirPath ...string) LoggerI {
	if config.Out == nil {
		dir := DefaultDataDirPath()
		if len(dataDirPath) != 0 && dataDirPath[0] != "" {
			dir = dataDirPath[0]
		}
		config.Out = io.MultiWriter(os.Stdout, newRotatingFile(dir))
	}
	return &Logger{config: config, mu: &sync.Mutex{}}
}

// newRotatingFile() opens the size rotated log file in <dataDir>/logs
func newRotatingFile(dataDirPath string) io.Writer {
	logDir := filepath.Join(dataDirPath, LogDirectory)
	if _, err := os.Stat(logDir); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(logDir, os.ModePerm); err != nil {
			panic(err)
		}
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    1, // megabyte
		MaxBackups: 100,
		MaxAge:     14, // days
		Compress:   true,
	}
}

// NewDefaultLogger() logs everything to stdout
func NewDefaultLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: os.Stdout})
}

// NewNullLogger() discards all output
func NewNullLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: io.Discard})
}
