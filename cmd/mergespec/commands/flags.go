package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

func splitAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
		return "", "", fmt.Errorf("expected KEY=VALUE, got %q", s)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

// parseBreakpoint reads "k=frequency".
func parseBreakpoint(s string) (int, float64, error) {
	key, value, err := splitAssignment(s)
	if err != nil {
		return 0, 0, err
	}
	k, err := strconv.Atoi(key)
	if err != nil || k < 1 || k > merge.NumBreakpoints {
		return 0, 0, fmt.Errorf("breakpoint number must be 1 to %d, got %q", merge.NumBreakpoints, key)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid breakpoint frequency %q", value)
	}
	return k, v, nil
}

// parseScale reads "BAND=offset,multiplier".
func parseScale(s string) (merge.BandID, float64, float64, error) {
	key, value, err := splitAssignment(s)
	if err != nil {
		return 0, 0, 0, err
	}
	id, err := merge.ParseBand(key)
	if err != nil {
		return 0, 0, 0, err
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("expected offset,multiplier for %s, got %q", id, value)
	}
	offset, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid offset %q for %s", parts[0], id)
	}
	multiplier, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid multiplier %q for %s", parts[1], id)
	}
	return id, offset, multiplier, nil
}

// parseAutoFill reads "BAND=order".
func parseAutoFill(s string) (merge.BandID, merge.Order, error) {
	key, value, err := splitAssignment(s)
	if err != nil {
		return 0, 0, err
	}
	id, err := merge.ParseBand(key)
	if err != nil {
		return 0, 0, err
	}
	if !id.Interior() {
		return 0, 0, fmt.Errorf("auto-fill is only available for FIR, MIR and NIR, got %s", id)
	}
	order, err := strconv.Atoi(value)
	if err != nil || order < 1 || order > 3 {
		return 0, 0, fmt.Errorf("auto-fill order must be 1, 2 or 3, got %q", value)
	}
	return id, merge.Order(order), nil
}
