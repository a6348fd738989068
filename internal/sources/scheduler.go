package sources

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gumcheck/internal"
)

// Instant is a wall-clock time of day at minute resolution.
type Instant struct {
	Hour   int
	Minute int
}

// ParseInstants parses a "HH:MM,HH:MM" list.
func ParseInstants(spec string) ([]Instant, error) {
	var out []Instant
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hh, mm, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid refresh time %q", part)
		}
		hour, err := strconv.Atoi(hh)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid refresh time %q", part)
		}
		minute, err := strconv.Atoi(mm)
		if err != nil || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("invalid refresh time %q", part)
		}
		out = append(out, Instant{Hour: hour, Minute: minute})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no refresh times in %q", spec)
	}
	return out, nil
}

// Decoder converts a raw byte stream into a table; the codec is injected so
// the scheduler stays free of format knowledge.
type Decoder func(blob []byte) (internal.Table, error)

// Scheduler reloads the automatic copies of the configured slots, either at
// fixed times of day (Tick) or whenever the caller asks (Refresh,
// RefreshAll — which also back the user-triggered manual refresh).
type Scheduler struct {
	store    Store
	files    FileStore
	decode   Decoder
	slots    map[Slot]string
	instants []Instant
}

func NewScheduler(store Store, files FileStore, decode Decoder, slots map[Slot]string, instants []Instant) *Scheduler {
	return &Scheduler{store: store, files: files, decode: decode, slots: slots, instants: instants}
}

// Tick fires when the current minute matches a configured instant. The
// last-fired minute is persisted in the store and compared against the
// tick's truncated-to-minute instant, so a poller ticking every few seconds
// fires at most once inside one matching minute.
func (s *Scheduler) Tick(now time.Time) (bool, map[Slot]error, error) {
	minute := now.Truncate(time.Minute)
	if !s.matches(minute) {
		return false, nil, nil
	}

	last, err := s.store.GetLastFired()
	if err != nil {
		return false, nil, err
	}
	if last != nil && last.Equal(minute) {
		return false, nil, nil
	}
	if err := s.store.SetLastFired(minute); err != nil {
		return false, nil, err
	}

	return true, s.RefreshAll(), nil
}

func (s *Scheduler) matches(minute time.Time) bool {
	for _, in := range s.instants {
		if minute.Hour() == in.Hour && minute.Minute() == in.Minute {
			return true
		}
	}
	return false
}

// RefreshAll reloads every configured slot. Failures are per slot and
// recoverable: each failing slot keeps its last-known-good cached copy.
func (s *Scheduler) RefreshAll() map[Slot]error {
	failures := map[Slot]error{}
	for _, slot := range Slots {
		if _, ok := s.slots[slot]; !ok {
			continue
		}
		if err := s.Refresh(slot); err != nil {
			failures[slot] = err
		}
	}
	return failures
}

// Refresh reloads one slot from its configured file. On success the cached
// TableSource is replaced wholesale (origin automatic, timestamp from the
// file's mtime). On any failure the cache is left untouched.
func (s *Scheduler) Refresh(slot Slot) error {
	name, ok := s.slots[slot]
	if !ok {
		return fmt.Errorf("no file configured for slot %s", slot)
	}

	blob, modified, err := s.files.Read(name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	table, err := s.decode(blob)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	loadedAt := modified
	return s.store.PutSource(slot, internal.TableSource{
		Table:    table,
		LoadedAt: &loadedAt,
		Origin:   internal.OriginAutomatic,
	})
}
