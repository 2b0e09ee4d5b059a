// Package registrytest provides the world-state double used by the registry and contract tests.
package registrytest

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Stub is a shimtest.MockStub that also serves paginated partial-key scans
// and canned key history, both of which MockStub leaves unimplemented.
type Stub struct {
	*shimtest.MockStub
	// History maps a world-state key to the iterator GetHistoryForKey returns.
	History map[string]*HistoryIterator
}

// NewStub returns a stub with an open transaction.
func NewStub() *Stub {
	mock := shimtest.NewMockStub("medequip", nil)
	mock.MockTransactionStart(uuid.NewString())
	return &Stub{MockStub: mock, History: map[string]*HistoryIterator{}}
}

// NextTx commits the open transaction and starts another.
func (s *Stub) NextTx() {
	s.MockTransactionEnd(s.TxID)
	s.MockTransactionStart(uuid.NewString())
}

// GetStateByPartialCompositeKeyWithPagination pages over the mock state in key order.
// The returned bookmark is the first key of the next page, empty on the last page.
func (s *Stub) GetStateByPartialCompositeKeyWithPagination(objectType string, keys []string,
	pageSize int32, bookmark string) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {

	iter, err := s.MockStub.GetStateByPartialCompositeKey(objectType, keys)
	if err != nil {
		return nil, nil, err
	}
	defer iter.Close()

	page := &kvIterator{}
	next := ""
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, nil, err
		}
		if bookmark != "" && kv.Key < bookmark {
			continue
		}
		if pageSize > 0 && int32(len(page.items)) == pageSize {
			next = kv.Key
			break
		}
		page.items = append(page.items, kv)
	}
	return page, &pb.QueryResponseMetadata{FetchedRecordsCount: int32(len(page.items)), Bookmark: next}, nil
}

// GetHistoryForKey serves History[key], or MockStub's "not implemented" error when unset.
func (s *Stub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	if it, ok := s.History[key]; ok {
		return it, nil
	}
	return s.MockStub.GetHistoryForKey(key)
}

type kvIterator struct {
	items []*queryresult.KV
	pos   int
}

func (it *kvIterator) HasNext() bool { return it.pos < len(it.items) }
func (it *kvIterator) Close() error  { return nil }

func (it *kvIterator) Next() (*queryresult.KV, error) {
	if it.pos >= len(it.items) {
		return nil, errors.New("iterator exhausted")
	}
	kv := it.items[it.pos]
	it.pos++
	return kv, nil
}

// maxFailedNexts bounds how long a failing HistoryIterator keeps reporting more results.
const maxFailedNexts = 100

// HistoryIterator replays Items. When Err is set it then keeps reporting more
// results while every Next fails with Err, like a peer iterator whose next page
// fetch failed.
type HistoryIterator struct {
	Items []*queryresult.KeyModification
	Err   error
	// Calls counts Next invocations.
	Calls int
	pos   int
}

func (it *HistoryIterator) HasNext() bool {
	if it.pos < len(it.Items) {
		return true
	}
	return it.Err != nil && it.Calls-len(it.Items) < maxFailedNexts
}

func (it *HistoryIterator) Close() error { return nil }

func (it *HistoryIterator) Next() (*queryresult.KeyModification, error) {
	it.Calls++
	if it.pos < len(it.Items) {
		item := it.Items[it.pos]
		it.pos++
		return item, nil
	}
	if it.Err != nil {
		return nil, it.Err
	}
	return nil, errors.New("iterator exhausted")
}
