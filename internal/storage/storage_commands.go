package storage

import "maps"

// CommandHashes returns the hashes of the slash commands last pushed to a
// guild, or globally for an empty guildID.
func (s *Storage) CommandHashes(guildID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateRecord(guildID)
	if err != nil {
		return nil, err
	}
	return maps.Clone(record.CommandHashes), nil
}

// SetCommandHashes replaces the stored hashes for a guild.
func (s *Storage) SetCommandHashes(guildID string, hashes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandHashes = maps.Clone(hashes)
	if record.CommandHashes == nil {
		record.CommandHashes = map[string]string{}
	}
	s.put(guildID, record)
	return nil
}

// ClearCommandHashes forgets what was pushed, forcing a full re-sync.
func (s *Storage) ClearCommandHashes(guildID string) error {
	return s.SetCommandHashes(guildID, nil)
}
