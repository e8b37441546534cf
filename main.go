package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/uchidalab/font2img/glyph"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		logrus.Fatal(err)
	}
	setupLogging(cfg.LogFile)

	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}
}

func run(cfg *Config) error {
	if !glyph.Lossless(cfg.Ext) {
		logrus.Warnf("%s output is lossy, written files will not match the rendered glyphs exactly", cfg.Ext)
	}
	cv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cv.Close(); err != nil {
			logrus.Errorf("close: %v", err)
		}
	}()
	return cv.Run()
}

func setupLogging(file string) {
	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    20,
			MaxBackups: 10,
			MaxAge:     7,
			Compress:   true,
		})
	}
	logrus.SetFormatter(&logFormatter{})
	logrus.SetOutput(out)
	logrus.SetReportCaller(true)
}

type logFormatter struct{}

// Format writes LEVEL, time, caller and message separated by tabs, followed by
// the entry's fields as key=value in key order.
func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := bytes.Buffer{}
	switch {
	case entry.Level <= logrus.ErrorLevel:
		buf.WriteString("ERR")
	case entry.Level == logrus.WarnLevel:
		buf.WriteString("WARN")
	case entry.Level >= logrus.DebugLevel:
		buf.WriteString("DEBUG")
	default:
		buf.WriteString("INFO")
	}
	buf.WriteByte('\t')
	buf.WriteString(entry.Time.UTC().Format("2006-01-02T15:04:05.000"))
	buf.WriteByte('\t')
	if entry.Caller == nil {
		buf.WriteString("-")
	} else {
		buf.WriteString(filepath.Base(entry.Caller.File))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Caller.Line))
	}
	buf.WriteByte('\t')
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, "\t%s=%v", k, entry.Data[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
