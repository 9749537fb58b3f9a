package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rivo/tview"
)

type Types int

const (
	Info Types = iota
	Error
	Warn
	Fatal
)

type Message struct {
	Timestamp time.Time
	Tag       string
	Message   string
	LogTypes  Types
}

type Logger struct {
	view    *tview.TextView
	tag     string
	dev     bool
	logFile *os.File
	logChan chan Message
	done    chan struct{}
}

var (
	logManager *Logger
	once       sync.Once
	closeOnce  sync.Once

	// sendMu guards logChan against sends after Close.
	sendMu sync.RWMutex
	closed bool
)

// InitLogger sets up the shared sink. view may be nil, in which case dev
// output goes to the standard logger.
func InitLogger(dev bool, logPath string, view *tview.TextView) error {
	var initErr error
	once.Do(func() {
		manager := &Logger{
			view:    view,
			dev:     dev,
			logChan: make(chan Message, 100),
			done:    make(chan struct{}),
		}
		if logPath != "" {
			timestamp := time.Now().Format("20060102_150405")
			fileName := fmt.Sprintf("policyask_log_%s.log", timestamp)
			filePath := filepath.Join(logPath, fileName)

			file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				initErr = fmt.Errorf("open log file: %w", err)
				return
			}
			manager.logFile = file
			go manager.processLogs()
		} else {
			close(manager.done)
		}
		logManager = manager
	})
	return initErr
}

// NewLogger returns a logger tagged with tag. Before InitLogger it discards
// everything.
func NewLogger(tag string) *Logger {
	if logManager == nil {
		return &Logger{tag: tag}
	}
	return &Logger{
		view:    logManager.view,
		tag:     tag,
		dev:     logManager.dev,
		logFile: logManager.logFile,
		logChan: logManager.logChan,
		done:    logManager.done,
	}
}

func (l *Logger) processLogs() {
	defer close(l.done)
	for msg := range l.logChan {
		timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")
		logMessage := fmt.Sprintf("%s [%s] %s: %s\n", timestamp, msg.Tag, msg.LogTypes.String(), msg.Message)
		l.logFile.WriteString(logMessage)
	}
}

func (l *Logger) log(logTypes Types, v ...interface{}) {
	message := fmt.Sprintln(v...)
	message = message[:len(message)-1]
	if l.dev {
		if l.view != nil {
			var format string
			switch logTypes {
			case Info:
				format = "[green]DEBUG (%s): %s[-]\n"
			case Warn:
				format = "[yellow]DEBUG (%s): %s[-]\n"
			default:
				format = "[red]DEBUG (%s): %s[-]\n"
			}
			fmt.Fprintf(l.view, format, l.tag, tview.Escape(message))
		} else {
			log.Printf("[%s] %s: %s", l.tag, logTypes.String(), message)
		}
	}

	if l.logFile != nil {
		sendMu.RLock()
		defer sendMu.RUnlock()
		if closed {
			return
		}
		l.logChan <- Message{
			Timestamp: time.Now(),
			Tag:       l.tag,
			Message:   message,
			LogTypes:  logTypes,
		}
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.log(Info, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.log(Error, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(Warn, v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.log(Fatal, v...)
	Close()
	os.Exit(1)
}

// Close flushes pending messages and closes the log file. Later messages to
// the file are dropped.
func Close() {
	if logManager == nil {
		return
	}
	closeOnce.Do(func() {
		if logManager.logFile == nil {
			return
		}
		sendMu.Lock()
		closed = true
		close(logManager.logChan)
		sendMu.Unlock()
		<-logManager.done
		logManager.logFile.Close()
	})
}

func (t Types) String() string {
	switch t {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
