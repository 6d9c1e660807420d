package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Storage keys used by the Storage Gateway.
const (
	KeyTasks          = "tasks"
	KeyCurrentUser    = "currentUser"
	KeyUserSettings   = "userSettings"
	KeySystemSettings = "systemSettings"
)

// WorkingHours is the user's working day.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UserSettings holds per-user preferences.
type UserSettings struct {
	DefaultPriority    Priority     `json:"defaultPriority"`
	TimeZone           string       `json:"timeZone"`
	DateFormat         string       `json:"dateFormat"`
	WorkingHours       WorkingHours `json:"workingHours"`
	EmailNotifications bool         `json:"emailNotifications"`
	PushNotifications  bool         `json:"pushNotifications"`
	TaskReminders      bool         `json:"taskReminders"`
	WeeklyDigest       bool         `json:"weeklyDigest"`
	AutoAssignTasks    bool         `json:"autoAssignTasks"`
}

// DefaultUserSettings returns the preferences used when none are stored.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		EmailNotifications: true,
		PushNotifications:  false,
		TaskReminders:      true,
		WeeklyDigest:       true,
		AutoAssignTasks:    false,
		DefaultPriority:    PriorityMedium,
		TimeZone:           "UTC",
		DateFormat:         "MM/dd/yyyy",
		WorkingHours:       WorkingHours{Start: "09:00", End: "17:00"},
	}
}

// SystemSettings holds manager-controlled settings.
type SystemSettings struct {
	InactiveDays        int  `json:"inactiveDays"`
	AllowSelfAssignment bool `json:"allowSelfAssignment"`
	RequireApproval     bool `json:"requireApproval"`
	AutoCloseInactive   bool `json:"autoCloseInactive"`
}

// DefaultSystemSettings returns the system settings used when none are stored.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		AllowSelfAssignment: true,
		RequireApproval:     true,
		AutoCloseInactive:   false,
		InactiveDays:        30,
	}
}

// SetSettingField sets one top-level JSON field of a settings struct from its
// string form, keeping the field's JSON type. Nested objects are given as JSON.
func SetSettingField(target any, key, value string) error {
	data, err := json.Marshal(target)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	current, ok := fields[key]
	if !ok {
		return fmt.Errorf("%q: %w", key, ErrUnknownSetting)
	}

	encoded, err := encodeSettingValue(current, value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	fields[key] = encoded

	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(merged, target); err != nil {
		return fmt.Errorf("setting %q: %w", key, ErrValidationFailed)
	}
	return nil
}

func encodeSettingValue(current json.RawMessage, value string) (json.RawMessage, error) {
	var decoded any
	_ = json.Unmarshal(current, &decoded)
	switch decoded.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false: %w", ErrValidationFailed)
		}
		return json.Marshal(b)
	case float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number: %w", ErrValidationFailed)
		}
		return json.Marshal(n)
	case map[string]any:
		if !json.Valid([]byte(value)) {
			return nil, fmt.Errorf("expected a JSON object: %w", ErrValidationFailed)
		}
		return json.RawMessage(value), nil
	default:
		return json.Marshal(value)
	}
}

// SettingFields flattens a settings struct into sorted key/value pairs for display.
func SettingFields(settings any) ([][2]string, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		v := string(fields[k])
		var s string
		if err := json.Unmarshal(fields[k], &s); err == nil {
			v = s
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}
