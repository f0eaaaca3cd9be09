// This file implements the built-in functions available inside {{ ... }}
// substitutions and the mechanism for registering more.
package vars

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Function is a built-in callable from a substitution pattern.
type Function func(args ...string) (string, error)

var (
	functionsMu sync.RWMutex
	functions   = map[string]Function{
		"base64_encode": base64Encode,
		"url_encode":    urlEncode,
		"concat":        concat,
		"upper":         upper,
		"lower":         lower,
		"random_int":    randomInt,
		"uuid":          newUUID,
		"timestamp":     timestamp,
	}
)

// GetFunction retrieves a registered function by name.
func GetFunction(name string) (Function, bool) {
	functionsMu.RLock()
	defer functionsMu.RUnlock()
	fn, ok := functions[name]
	return fn, ok
}

// RegisterFunction adds a custom function.
func RegisterFunction(name string, fn Function) error {
	functionsMu.Lock()
	defer functionsMu.Unlock()
	if _, exists := functions[name]; exists {
		return fmt.Errorf("function %s is already registered", name)
	}
	functions[name] = fn
	return nil
}

func checkArgCount(name string, args []string, expected int) error {
	if len(args) != expected {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, expected, len(args))
	}
	return nil
}

func base64Encode(args ...string) (string, error) {
	if err := checkArgCount("base64_encode", args, 1); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(args[0])), nil
}

func urlEncode(args ...string) (string, error) {
	if err := checkArgCount("url_encode", args, 1); err != nil {
		return "", err
	}
	return url.QueryEscape(args[0]), nil
}

func concat(args ...string) (string, error) {
	return strings.Join(args, ""), nil
}

func upper(args ...string) (string, error) {
	if err := checkArgCount("upper", args, 1); err != nil {
		return "", err
	}
	return strings.ToUpper(args[0]), nil
}

func lower(args ...string) (string, error) {
	if err := checkArgCount("lower", args, 1); err != nil {
		return "", err
	}
	return strings.ToLower(args[0]), nil
}

// randomInt returns an integer in [min, max].
func randomInt(args ...string) (string, error) {
	if err := checkArgCount("random_int", args, 2); err != nil {
		return "", err
	}
	min, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("random_int: invalid min %q", args[0])
	}
	max, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("random_int: invalid max %q", args[1])
	}
	if max < min {
		return "", fmt.Errorf("random_int: max %d is less than min %d", max, min)
	}
	return strconv.Itoa(min + rand.IntN(max-min+1)), nil
}

func newUUID(args ...string) (string, error) {
	if err := checkArgCount("uuid", args, 0); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

// timestamp returns the current Unix time in seconds, or formatted with a Go
// layout when one is given.
func timestamp(args ...string) (string, error) {
	switch len(args) {
	case 0:
		return strconv.FormatInt(time.Now().Unix(), 10), nil
	case 1:
		return time.Now().Format(args[0]), nil
	default:
		return "", fmt.Errorf("timestamp expects at most 1 argument, got %d", len(args))
	}
}
