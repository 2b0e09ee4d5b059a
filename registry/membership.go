package registry

import (
	"encoding/json"
	"fmt"

	"medequip/model"
)

// memberSet is a set of identities stored as one world-state key per member.
// An absent key means not a member; there is no other state.
type memberSet struct {
	ledger    Ledger
	namespace string
	role      string
	// errDuplicate is returned by add when the identity is already present.
	errDuplicate error
}

func (m *memberSet) key(id Identity) (string, error) {
	return m.ledger.CreateCompositeKey(memberObjectType, []string{m.namespace, m.role, string(id)})
}

func (m *memberSet) has(id Identity) (bool, error) {
	if id.validate(m.role) != nil {
		return false, nil
	}
	key, err := m.key(id)
	if err != nil {
		return false, fmt.Errorf("failed to create %s key for '%s': %w", m.role, id, err)
	}
	raw, err := m.ledger.GetState(key)
	if err != nil {
		return false, fmt.Errorf("ledger error checking %s '%s': %w", m.role, id, err)
	}
	return raw != nil, nil
}

// add inserts id. Authorization is the caller's responsibility.
func (m *memberSet) add(addedBy, id Identity) error {
	if err := id.validate(m.role); err != nil {
		return err
	}
	present, err := m.has(id)
	if err != nil {
		return err
	}
	if present {
		return m.errDuplicate
	}
	now, err := txTime(m.ledger)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(model.MembershipRecord{
		ObjectType: memberObjectType,
		Namespace:  m.namespace,
		Role:       m.role,
		Identity:   string(id),
		AddedBy:    string(addedBy),
		AddedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s record for '%s': %w", m.role, id, err)
	}
	key, err := m.key(id)
	if err != nil {
		return fmt.Errorf("failed to create %s key for '%s': %w", m.role, id, err)
	}
	if err := m.ledger.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save %s '%s': %w", m.role, id, err)
	}
	return nil
}

// remove deletes id, failing with ErrNotFound when it is not a member.
func (m *memberSet) remove(id Identity) error {
	if err := id.validate(m.role); err != nil {
		return err
	}
	present, err := m.has(id)
	if err != nil {
		return err
	}
	if !present {
		return ErrNotFound
	}
	key, err := m.key(id)
	if err != nil {
		return fmt.Errorf("failed to create %s key for '%s': %w", m.role, id, err)
	}
	if err := m.ledger.DelState(key); err != nil {
		return fmt.Errorf("failed to delete %s '%s': %w", m.role, id, err)
	}
	return nil
}

// page lists up to pageSize members in key order, starting at bookmark. It also
// returns the bookmark of the following page, empty after the last one.
func (m *memberSet) page(pageSize int32, bookmark string) ([]Identity, string, error) {
	iter, metadata, err := m.ledger.GetStateByPartialCompositeKeyWithPagination(memberObjectType, []string{m.namespace, m.role}, pageSize, bookmark)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get %s iterator: %w", m.role, err)
	}
	defer iter.Close()

	ids := []Identity{}
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, "", fmt.Errorf("failed to iterate %s set: %w", m.role, err)
		}
		_, attrs, err := m.ledger.SplitCompositeKey(kv.Key)
		if err != nil || len(attrs) != 3 {
			logger.Warningf("Skipping malformed %s key '%s': %v", m.role, kv.Key, err)
			continue
		}
		ids = append(ids, Identity(attrs[2]))
	}
	return ids, metadata.GetBookmark(), nil
}
