package registry

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/common/flogging"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var logger = flogging.MustGetLogger("medequip.registry")

// Ledger is the part of the chaincode stub the registries read and write through.
// shim.ChaincodeStubInterface satisfies it.
type Ledger interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	DelState(key string) error
	CreateCompositeKey(objectType string, attributes []string) (string, error)
	SplitCompositeKey(compositeKey string) (string, []string, error)
	GetStateByPartialCompositeKey(objectType string, keys []string) (shim.StateQueryIteratorInterface, error)
	GetStateByPartialCompositeKeyWithPagination(objectType string, keys []string, pageSize int32, bookmark string) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error)
	GetTxTimestamp() (*timestamppb.Timestamp, error)
}

// Namespaces keep the two registries apart inside one world state.
const (
	DonorVerificationNamespace      = "donor-verification"
	EquipmentCertificationNamespace = "equipment-certification"
)

// Object types for composite keys, also stored as 'objectType' in each document.
const (
	adminObjectType         = "Admin"         // Attributes: namespace.
	memberObjectType        = "Member"        // Attributes: namespace, role, identity.
	certificationObjectType = "Certification" // Attributes: namespace, equipmentId, donorId.
)

// Identity is an opaque principal, compared only for equality.
// Any string is an identity, including the empty one, as long as it can be keyed.
type Identity string

func (id Identity) validate(field string) error {
	return validateKeyPart(string(id), field)
}

// validateKeyPart rejects values CreateCompositeKey cannot encode.
func validateKeyPart(value, field string) error {
	if !utf8.ValidString(value) || strings.ContainsAny(value, "\x00\U0010FFFF") {
		return fmt.Errorf("%w: %s contains characters not allowed in a ledger key", ErrInvalidArgument, field)
	}
	return nil
}

func txTime(ledger Ledger) (time.Time, error) {
	ts, err := ledger.GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}
