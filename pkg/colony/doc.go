// Package colony is a small ant world used as the reference behaviour catalogue.
package colony
