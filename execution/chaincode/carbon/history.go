// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package carbon

import (
	"encoding/json"
	"time"

	"github.com/aungmawjj/carbon-ledger/execution/chaincode"
)

// historyOf replays every committed version of a certificate, oldest first
func historyOf(rc chaincode.ReadContext, certID string) ([]*HistoryRecord, error) {
	if err := requireID("certificate id", certID); err != nil {
		return nil, err
	}
	mods, err := rc.GetHistory(CertificateKey(certID))
	if err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		return nil, errorf(ErrNotFound, "certificate %s", certID)
	}
	records := make([]*HistoryRecord, 0, len(mods))
	for _, mod := range mods {
		record := &HistoryRecord{
			TxID:     mod.TxID,
			IsDelete: mod.IsDelete,
			Timestamp: RawTimestamp{
				Seconds: mod.Timestamp.Unix(),
				Nanos:   int32(mod.Timestamp.Nanosecond()),
			},
			TimestampISO: mod.Timestamp.UTC().Format(time.RFC3339Nano),
		}
		if !mod.IsDelete && len(mod.Value) > 0 {
			record.Value = new(Certificate)
			if err := json.Unmarshal(mod.Value, record.Value); err != nil {
				return nil, err
			}
		}
		records = append(records, record)
	}
	return records, nil
}
