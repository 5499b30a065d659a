package states

import (
	addr "github.com/filecoin-project/go-address"
	"golang.org/x/xerrors"

	"github.com/leakr-project/leakr-actors/actors/builtin"
	"github.com/leakr-project/leakr-actors/actors/builtin/account"
	"github.com/leakr-project/leakr-actors/actors/builtin/greeter"
	init_ "github.com/leakr-project/leakr-actors/actors/builtin/init"
	"github.com/leakr-project/leakr-actors/actors/builtin/release"
)

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors thar are particularly troublesome to recover from should propagate as Go errors.
func CheckStateInvariants(tree *Tree, now uint64) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	var initSummary *init_.StateSummary
	accountSummaries := make(map[addr.Address]*account.StateSummary)
	recordSummaries := make(map[addr.Address]*release.StateSummary)
	var greeterSummaries []*greeter.StateSummary

	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		acc := acc.WithPrefix("%v ", key) // Intentional shadow
		if key.Protocol() != addr.ID {
			acc.Addf("unexpected address protocol in state tree root: %v", key)
		}

		switch {
		case actor.Code.Equals(builtin.InitActorCodeID):
			var st init_.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := init_.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("init: ").AddAll(msgs)
			initSummary = summary

		case actor.Code.Equals(builtin.AccountActorCodeID):
			var st account.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := account.CheckStateInvariants(&st)
			acc.WithPrefix("account: ").AddAll(msgs)
			accountSummaries[key] = summary

		case builtin.IsTimedReleaseActor(actor.Code):
			var st release.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := release.CheckStateInvariants(&st, now)
			acc.WithPrefix("%s: ", builtin.ActorNameByCode(actor.Code)).AddAll(msgs)
			acc.Require(!actor.Code.Equals(builtin.ReleaseActorCodeID) || st.PublicDescription == "",
				"release record has a public description")
			recordSummaries[key] = summary

		case actor.Code.Equals(builtin.GreeterActorCodeID):
			var st greeter.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := greeter.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("greeter: ").AddAll(msgs)
			greeterSummaries = append(greeterSummaries, summary)

		default:
			return xerrors.Errorf("unexpected actor code CID %v for address %v", actor.Code, key)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	CheckInitAgainstTree(acc, initSummary, tree)
	CheckRecordsAgainstAccounts(acc, recordSummaries, accountSummaries)

	_ = greeterSummaries

	return acc, nil
}

// Every address the init actor has mapped must resolve to an actor in the tree.
func CheckInitAgainstTree(acc *builtin.MessageAccumulator, initSummary *init_.StateSummary, tree *Tree) {
	if initSummary == nil {
		acc.Add("init actor is missing from the state tree")
		return
	}
	for robust, id := range initSummary.AddrIDs { // nolint:nomaprange
		idAddr, err := addr.NewIDAddress(uint64(id))
		if err != nil {
			acc.Addf("init maps %v to invalid id %d: %v", robust, id, err)
			continue
		}
		_, found, err := tree.GetActor(idAddr)
		if err != nil {
			acc.Addf("failed to load actor %v mapped from %v: %v", idAddr, robust, err)
			continue
		}
		acc.Require(found, "init maps %v to %v which is not in the state tree", robust, idAddr)
	}
}

// Every record must have been deployed by an account.
func CheckRecordsAgainstAccounts(acc *builtin.MessageAccumulator, records map[addr.Address]*release.StateSummary, accounts map[addr.Address]*account.StateSummary) {
	for recordAddr, record := range records { // nolint:nomaprange
		_, ok := accounts[record.Author]
		acc.Require(ok, "record %v author %v is not an account", recordAddr, record.Author)
	}
}
