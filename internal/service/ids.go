package service

import "github.com/google/uuid"

// newID returns an opaque, process-unique identifier such as "task_<uuid>".
func newID(kind string) string {
	return kind + "_" + uuid.NewString()
}
