// Package catalogservice contains the CourseBay course directory.
//
// Course slugs are derived once at creation by the slug generator in
// domain/services and are never changed afterwards. The generator's snapshot
// check is advisory; the store's unique index is the authoritative guard
// under concurrent creation.
package catalogservice
