package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// lenient collects whether anything was dropped while decoding one
// top-level container.
type lenient struct {
	dirty bool
}

// decodeState parses a persisted snapshot container by container. Only a
// payload that is not a JSON object at all is an error. Malformed entries are
// dropped, a container of the wrong shape is left nil for State.repair to
// rebuild, and both cases are reported in repaired.
func decodeState(data []byte) (st *State, repaired []string, err error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("decoding state: %w", err)
	}
	if top == nil {
		return nil, nil, fmt.Errorf("decoding state: not an object")
	}

	st = &State{}
	field := func(name string, fn func(l *lenient, raw json.RawMessage) bool) {
		raw, ok := top[name]
		if !ok || isNull(raw) {
			return
		}
		l := &lenient{}
		if !fn(l, raw) || l.dirty {
			repaired = append(repaired, name)
		}
	}
	scalar := func(dst any) func(*lenient, json.RawMessage) bool {
		return func(_ *lenient, raw json.RawMessage) bool { return json.Unmarshal(raw, dst) == nil }
	}

	field("version", scalar(&st.Version))
	field("appVersion", scalar(&st.AppVersion))
	field("todayKey", scalar(&st.TodayKey))
	field("weekKey", scalar(&st.WeekKey))
	field("monthKey", scalar(&st.MonthKey))
	field("domains", func(_ *lenient, raw json.RawMessage) bool {
		var domains []Domain
		if err := json.Unmarshal(raw, &domains); err != nil {
			return false
		}
		st.Domains = domains
		return true
	})
	field("weeklyScores", func(l *lenient, raw json.RawMessage) bool {
		frames, ok := decodeKeyed(l, raw, func(raw json.RawMessage) (WeekFrame, bool) {
			m, ok := decodeIndexed(l, raw, decodeScore)
			return WeekFrame(m), ok
		})
		st.WeeklyScores = frames
		return ok
	})
	field("monthlyScores", func(l *lenient, raw json.RawMessage) bool {
		frames, ok := decodeKeyed(l, raw, func(raw json.RawMessage) (MonthFrame, bool) {
			m, ok := decodeIndexed(l, raw, func(raw json.RawMessage) (map[int]float64, bool) {
				return decodeIndexed(l, raw, decodeScore)
			})
			return MonthFrame(m), ok
		})
		st.MonthlyScores = frames
		return ok
	})
	field("tasks", func(l *lenient, raw json.RawMessage) bool {
		packs, ok := decodeKeyed(l, raw, func(raw json.RawMessage) (*DayTaskPack, bool) {
			return decodePack(l, raw)
		})
		st.Tasks = packs
		return ok
	})
	field("templates", func(l *lenient, raw json.RawMessage) bool {
		slots, ok := decodeIndexed(l, raw, func(raw json.RawMessage) (map[int]*TemplateSlot, bool) {
			return decodeIndexed(l, raw, func(raw json.RawMessage) (*TemplateSlot, bool) {
				return decodeSlot(l, raw)
			})
		})
		st.Templates = slots
		return ok
	})

	return st, repaired, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// decodeKeyed decodes a JSON object whose values are decoded by fn. ok is
// false only when raw is not an object. Entries fn rejects are dropped.
func decodeKeyed[T any](l *lenient, raw json.RawMessage, fn func(json.RawMessage) (T, bool)) (map[string]T, bool) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, false
	}
	out := make(map[string]T, len(entries))
	for k, v := range entries {
		val, ok := fn(v)
		if !ok {
			l.dirty = true
			continue
		}
		out[k] = val
	}
	return out, true
}

// decodeIndexed is decodeKeyed for objects keyed by non-negative integer
// indices. Keys that are not indices are dropped.
func decodeIndexed[T any](l *lenient, raw json.RawMessage, fn func(json.RawMessage) (T, bool)) (map[int]T, bool) {
	keyed, ok := decodeKeyed(l, raw, fn)
	if !ok {
		return nil, false
	}
	out := make(map[int]T, len(keyed))
	for k, v := range keyed {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			l.dirty = true
			continue
		}
		out[idx] = v
	}
	return out, true
}

func decodeScore(raw json.RawMessage) (float64, bool) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func decodePack(l *lenient, raw json.RawMessage) (*DayTaskPack, bool) {
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || parts == nil {
		return nil, false
	}
	pack := newDayTaskPack()
	if v, ok := parts["pending"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &pack.Pending); err != nil {
			pack.Pending = []Task{}
			l.dirty = true
		}
	}
	if v, ok := parts["done"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &pack.Done); err != nil {
			pack.Done = []Task{}
			l.dirty = true
		}
	}
	return pack, true
}

func decodeSlot(l *lenient, raw json.RawMessage) (*TemplateSlot, bool) {
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || parts == nil {
		return nil, false
	}
	slot := newTemplateSlot()
	for _, d := range Difficulties {
		v, ok := parts[string(d)]
		if !ok || isNull(v) {
			continue
		}
		var labels []string
		if err := json.Unmarshal(v, &labels); err != nil {
			l.dirty = true
			continue
		}
		slot.setLabels(d, labels)
	}
	return slot, true
}
