package bot

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// PanelRef locates a guild's control panel message.
type PanelRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// PanelStore persists panel locations to a JSON file so panels survive
// restarts and can be re-attached on ready.
type PanelStore struct {
	mu     sync.Mutex
	path   string
	panels map[string]PanelRef // guild ID -> panel message
}

func NewPanelStore(path string) *PanelStore {
	return &PanelStore{
		path:   path,
		panels: make(map[string]PanelRef),
	}
}

// Load reads the store from disk. A missing file is not an error; the store
// just starts empty.
func (ps *PanelStore) Load() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	data, err := os.ReadFile(ps.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	panels := make(map[string]PanelRef)
	if err := json.Unmarshal(data, &panels); err != nil {
		return err
	}
	ps.panels = panels
	return nil
}

// save writes the store to disk. Callers must hold ps.mu.
func (ps *PanelStore) save() {
	data, err := json.MarshalIndent(ps.panels, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("could not marshal panel store")
		return
	}
	if err := os.WriteFile(ps.path, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", ps.path).Msg("could not write panel store")
	}
}

// All returns a copy of every stored panel.
func (ps *PanelStore) All() map[string]PanelRef {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make(map[string]PanelRef, len(ps.panels))
	for guildID, ref := range ps.panels {
		out[guildID] = ref
	}
	return out
}

func (ps *PanelStore) Get(guildID string) (PanelRef, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ref, ok := ps.panels[guildID]
	return ref, ok
}

func (ps *PanelStore) Set(guildID string, ref PanelRef) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.panels[guildID] = ref
	ps.save()
}

func (ps *PanelStore) Delete(guildID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, ok := ps.panels[guildID]; !ok {
		return
	}
	delete(ps.panels, guildID)
	ps.save()
}
