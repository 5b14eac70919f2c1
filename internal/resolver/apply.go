package resolver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// ErrMalformedPayload marks an inbound remote change whose payload cannot
// be decoded or fails an invariant. Callers treat it as permanent: the
// remote will keep sending the same bytes.
var ErrMalformedPayload = errors.New("malformed remote payload")

// ApplyRemote reconciles one inbound remote change against the store,
// using the same exact-key matching as import. Creates and updates are
// handled uniformly: if the natural key already resolves to a local row,
// the remote's fields land on that row; otherwise a new row is written
// under the remote's id. Duplicate transactions are skipped, not erred.
func (r *Resolver) ApplyRemote(et model.EntityType, op model.ChangeOp, entityID string, payload []byte) error {
	if op == model.OpDelete {
		return r.store.DeleteRemote(et, entityID)
	}

	switch et {
	case model.EntityAccount:
		var acct model.Account
		if err := json.Unmarshal(payload, &acct); err != nil {
			return fmt.Errorf("%w: account: %v", ErrMalformedPayload, err)
		}
		if acct.Name == "" {
			return fmt.Errorf("%w: account has no name", ErrMalformedPayload)
		}
		if acct.ID == "" {
			acct.ID = entityID
		}
		existing, err := r.Account(acct.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			acct.ID = existing.ID
		}
		return r.store.SaveRemote(&acct)

	case model.EntityCategory:
		var cat model.Category
		if err := json.Unmarshal(payload, &cat); err != nil {
			return fmt.Errorf("%w: category: %v", ErrMalformedPayload, err)
		}
		if cat.Name == "" {
			return fmt.Errorf("%w: category has no name", ErrMalformedPayload)
		}
		if cat.ID == "" {
			cat.ID = entityID
		}
		cat.NameKey = model.CategoryKey(cat.Name)
		existing, err := r.Category(cat.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			cat.ID = existing.ID
		}
		return r.store.SaveRemote(&cat)

	case model.EntitySecurity:
		var sec model.Security
		if err := json.Unmarshal(payload, &sec); err != nil {
			return fmt.Errorf("%w: security: %v", ErrMalformedPayload, err)
		}
		if sec.Symbol == "" {
			return fmt.Errorf("%w: security has no symbol", ErrMalformedPayload)
		}
		if sec.ID == "" {
			sec.ID = entityID
		}
		existing, err := r.Security(sec.Symbol)
		if err != nil {
			return err
		}
		if existing != nil {
			sec.ID = existing.ID
		}
		return r.store.SaveRemote(&sec)

	case model.EntityTransaction:
		var txn model.Transaction
		if err := json.Unmarshal(payload, &txn); err != nil {
			return fmt.Errorf("%w: transaction: %v", ErrMalformedPayload, err)
		}
		if txn.AccountID == "" || txn.Fingerprint == "" {
			return fmt.Errorf("%w: transaction missing account or fingerprint", ErrMalformedPayload)
		}
		if txn.ID == "" {
			txn.ID = entityID
		}
		if op == model.OpCreate {
			dup, err := r.TransactionDuplicate(txn.AccountID, txn.Fingerprint)
			if err != nil {
				return err
			}
			if dup {
				return nil
			}
		}
		return r.store.SaveRemote(&txn)

	case model.EntityRule:
		var rule model.Rule
		if err := json.Unmarshal(payload, &rule); err != nil {
			return fmt.Errorf("%w: rule: %v", ErrMalformedPayload, err)
		}
		if rule.Pattern == "" || rule.CategoryID == "" {
			return fmt.Errorf("%w: rule missing pattern or category", ErrMalformedPayload)
		}
		if rule.ID == "" {
			rule.ID = entityID
		}
		return r.store.SaveRemote(&rule)

	default:
		return fmt.Errorf("%w: unknown entity type %q", ErrMalformedPayload, et)
	}
}
