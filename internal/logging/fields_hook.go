package logging

import "github.com/sirupsen/logrus"

// staticFieldsHook stamps the same fields on every entry unless the entry
// already carries its own value for them.
type staticFieldsHook struct {
	fields logrus.Fields
}

func newStaticFieldsHook(fields logrus.Fields) *staticFieldsHook {
	return &staticFieldsHook{fields: fields}
}

func (h *staticFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *staticFieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
