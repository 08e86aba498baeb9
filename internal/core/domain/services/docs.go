// Package services contains stateless domain services that operate across
// aggregates: the dispatch matcher, which filters pending deliveries by
// vehicle compatibility, and the delivery validator, which performs the
// referential checks of the validation gate against external stores.
package services
