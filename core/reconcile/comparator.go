package reconcile

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Compare classifies one PRE-EA row against its matched CSSM rows.
//
// Rules are evaluated top to bottom, first applicable rule wins:
//
//  1. empty match set               -> NOT_FOUND
//  2. summed quantity differs       -> QUANTITY_MISMATCH
//  3. missing/unparseable date, or
//     PRE-EA expires after the
//     earliest matched CSSM date    -> DATE_ISSUE
//  4. otherwise                     -> OK
//
// When several CSSM rows match, quantities are summed and the earliest
// expiration date among them is the comparison date; the earliest expiry is
// the binding constraint. Malformed dates classify, they never error.
func Compare(row LineItem, matches []LineItem) (Outcome, string) {
	if len(matches) == 0 {
		return OutcomeNotFound, fmt.Sprintf("order %q / SKU %q not found in CSSM", row.OrderNumber, row.SKU)
	}

	total := 0
	for _, m := range matches {
		total += m.Quantity
	}
	if total != row.Quantity {
		return OutcomeQuantityMismatch, fmt.Sprintf(
			"quantity mismatch: PRE-EA %d, CSSM %d across %d row(s)", row.Quantity, total, len(matches))
	}

	earliest, ok := earliestExpiration(matches)
	if !ok {
		return OutcomeDateIssue, "CSSM expiration date missing or unparseable"
	}
	if row.ExpirationDate == nil {
		return OutcomeDateIssue, "PRE-EA expiration date missing or unparseable"
	}
	if row.ExpirationDate.After(earliest) {
		return OutcomeDateIssue, fmt.Sprintf(
			"PRE-EA expires %s, after CSSM %s", row.ExpirationDate.Format(dateLayout), earliest.Format(dateLayout))
	}

	return OutcomeOK, fmt.Sprintf(
		"quantity %d and expiration %s within CSSM %s", row.Quantity, row.ExpirationDate.Format(dateLayout), earliest.Format(dateLayout))
}

// earliestExpiration returns the minimum expiration date across the match
// set. Any row without a parseable date makes the earliest date unknowable,
// so ok is false and the caller classifies the row as a date issue.
func earliestExpiration(matches []LineItem) (time.Time, bool) {
	var earliest time.Time
	for i, m := range matches {
		if m.ExpirationDate == nil {
			return time.Time{}, false
		}
		if i == 0 || m.ExpirationDate.Before(earliest) {
			earliest = *m.ExpirationDate
		}
	}
	return earliest, true
}
