package pkg

import (
	"fmt"
	"net/http"
	"unsafe"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathUUID parses the named mux path variable as a UUID.
func PathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[key]
	if !ok {
		return uuid.Nil, fmt.Errorf("path variable %q not set", key)
	}
	return uuid.Parse(raw)
}
