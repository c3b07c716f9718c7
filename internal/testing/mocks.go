// Package testing provides shared test infrastructure: a recording logger,
// an in-memory sysfs and ready-made simulated platforms.
package testing

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tungetti/clinspect/internal/logging"
)

// LogMessage represents a recorded log message.
type LogMessage struct {
	Level   logging.Level
	Message string
	Fields  []interface{}
}

type logRecorder struct {
	mu       sync.Mutex
	level    logging.Level
	messages []LogMessage
}

// MockLogger implements logging.Logger and records every message. Loggers
// derived with WithPrefix or WithFields record into the same store.
type MockLogger struct {
	rec    *logRecorder
	prefix string
	fields []interface{}
}

// NewMockLogger creates a MockLogger recording at debug level.
func NewMockLogger() *MockLogger {
	return &MockLogger{rec: &logRecorder{level: logging.LevelDebug}}
}

func (m *MockLogger) Debug(msg string, keyvals ...interface{}) {
	m.record(logging.LevelDebug, msg, keyvals)
}

func (m *MockLogger) Info(msg string, keyvals ...interface{}) {
	m.record(logging.LevelInfo, msg, keyvals)
}

func (m *MockLogger) Warn(msg string, keyvals ...interface{}) {
	m.record(logging.LevelWarn, msg, keyvals)
}

func (m *MockLogger) Error(msg string, keyvals ...interface{}) {
	m.record(logging.LevelError, msg, keyvals)
}

// WithPrefix returns a child logger sharing this logger's store.
func (m *MockLogger) WithPrefix(prefix string) logging.Logger {
	if m.prefix != "" {
		prefix = m.prefix + "." + prefix
	}
	return &MockLogger{rec: m.rec, prefix: prefix, fields: m.fields}
}

// WithFields returns a child logger that adds keyvals to every message.
func (m *MockLogger) WithFields(keyvals ...interface{}) logging.Logger {
	fields := append(append([]interface{}{}, m.fields...), keyvals...)
	return &MockLogger{rec: m.rec, prefix: m.prefix, fields: fields}
}

func (m *MockLogger) SetLevel(level logging.Level) {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.level = level
}

func (m *MockLogger) GetLevel() logging.Level {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return m.rec.level
}

func (m *MockLogger) record(level logging.Level, msg string, keyvals []interface{}) {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	if level < m.rec.level {
		return
	}
	if m.prefix != "" {
		msg = m.prefix + ": " + msg
	}
	fields := append(append([]interface{}{}, m.fields...), keyvals...)
	m.rec.messages = append(m.rec.messages, LogMessage{Level: level, Message: msg, Fields: fields})
}

// Messages returns all recorded log messages.
func (m *MockLogger) Messages() []LogMessage {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return append([]LogMessage{}, m.rec.messages...)
}

// ContainsMessage checks if any recorded message contains the given substring.
func (m *MockLogger) ContainsMessage(substring string) bool {
	return m.ContainsMessageAtLevel(-1, substring)
}

// ContainsMessageAtLevel checks messages at level (or any level when level
// is negative) for substring.
func (m *MockLogger) ContainsMessageAtLevel(level logging.Level, substring string) bool {
	for _, msg := range m.Messages() {
		if (level < 0 || msg.Level == level) && strings.Contains(msg.Message, substring) {
			return true
		}
	}
	return false
}

// Field returns the value of the first field named key on a message
// containing substring.
func (m *MockLogger) Field(substring, key string) (interface{}, bool) {
	for _, msg := range m.Messages() {
		if !strings.Contains(msg.Message, substring) {
			continue
		}
		for i := 0; i+1 < len(msg.Fields); i += 2 {
			if k, ok := msg.Fields[i].(string); ok && k == key {
				return msg.Fields[i+1], true
			}
		}
	}
	return nil, false
}

var _ logging.Logger = (*MockLogger)(nil)

// MockFileSystem is an in-memory sysfs for the pci scanner.
type MockFileSystem struct {
	// Files maps path to file content
	Files map[string]string
	// Links maps symlink path to target
	Links map[string]string
	// Stats lists paths that exist
	Stats map[string]bool
	// Errors maps path to error to return
	Errors map[string]error
}

// NewMockFileSystem creates an empty mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string]string),
		Links:  make(map[string]string),
		Stats:  make(map[string]bool),
		Errors: make(map[string]error),
	}
}

type mockFileInfo struct {
	name string
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return 0 }
func (m mockFileInfo) Mode() fs.FileMode  { return 0 }
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return true }
func (m mockFileInfo) Sys() interface{}   { return nil }

func (m *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if err, ok := m.Errors[filename]; ok {
		return nil, err
	}
	if content, ok := m.Files[filename]; ok {
		return []byte(content), nil
	}
	return nil, os.ErrNotExist
}

func (m *MockFileSystem) Readlink(name string) (string, error) {
	if err, ok := m.Errors[name]; ok {
		return "", err
	}
	if target, ok := m.Links[name]; ok {
		return target, nil
	}
	return "", os.ErrNotExist
}

func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if m.Stats[name] {
		return mockFileInfo{name: filepath.Base(name)}, nil
	}
	return nil, os.ErrNotExist
}

// AddPCIDevice adds a device directory with its id files.
func (m *MockFileSystem) AddPCIDevice(sysfsPath, address, vendorID, deviceID, class string) {
	devicePath := filepath.Join(sysfsPath, address)
	m.Stats[devicePath] = true
	m.Files[filepath.Join(devicePath, "vendor")] = "0x" + vendorID + "\n"
	m.Files[filepath.Join(devicePath, "device")] = "0x" + deviceID + "\n"
	m.Files[filepath.Join(devicePath, "class")] = "0x" + class + "\n"
}

// AddDriver binds a driver to a device.
func (m *MockFileSystem) AddDriver(sysfsPath, address, driverName string) {
	driverPath := filepath.Join(sysfsPath, address, "driver")
	m.Stats[driverPath] = true
	m.Links[driverPath] = "../../../bus/pci/drivers/" + driverName
}
