package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"medequip/model"
	"medequip/registry"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("medequip.contract")

// Chaincode event names.
const (
	eventAdminInitialized         = "AdminInitialized"
	eventAdminTransferred         = "AdminTransferred"
	eventDonorVerified            = "DonorVerified"
	eventDonorVerificationRemoved = "DonorVerificationRemoved"
	eventCertifierAdded           = "CertifierAdded"
	eventCertifierRemoved         = "CertifierRemoved"
	eventEquipmentCertified       = "EquipmentCertified"
	eventCertificationUpdated     = "CertificationUpdated"
)

// getCurrentTxTimestamp retrieves the current transaction timestamp from the stub.
func getCurrentTxTimestamp(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}

// emitEvent sends a chaincode event. Failures are logged, never returned:
// the state change has already been applied.
func emitEvent(ctx contractapi.TransactionContextInterface, namespace, eventName string, actor registry.Identity, additionalPayload map[string]interface{}) {
	payload := map[string]interface{}{
		"namespace":   namespace,
		"actorFullId": actor,
		"actorMspId":  callerMSPID(ctx),
	}
	if now, err := getCurrentTxTimestamp(ctx); err == nil {
		payload["transactionTimestamp"] = now.Format(time.RFC3339)
	}
	for k, v := range additionalPayload {
		payload[k] = v
	}
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitEvent: Failed to marshal event payload for event '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePageSize falls back to defaultPageSize on unparsable or non-positive input
// and caps the result at maxPageSize.
func parsePageSize(pageSizeStr string) int32 {
	pageSize, err := strconv.ParseInt(pageSizeStr, 10, 32)
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return int32(pageSize)
}

func newIdentityPage(ids []registry.Identity, nextBookmark string) *model.IdentityPage {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return &model.IdentityPage{
		Identities:   out, // Will be [] if empty, not null
		NextBookmark: nextBookmark,
		FetchedCount: int32(len(out)),
	}
}
