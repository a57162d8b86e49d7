// Package money handles the prices shown in the storefront.
//
// Backend payloads carry prices either as plain numbers (15000) or as display
// strings ("₩15,000", "15,000원"). Price keeps whichever form it was decoded from,
// so re-encoding a stored cart does not change its bytes, and exposes Amount for
// arithmetic. Amount strips every non-digit character before parsing, so a
// malformed price contributes 0 instead of failing an aggregate.
//
// Formatter renders integer amounts with locale-aware digit grouping using
// golang.org/x/text/message:
//
//	money.Won.Format(15000)                         // "15,000원"
//	money.FormatCurrency(language.English, currency.USD, 1250)
package money
