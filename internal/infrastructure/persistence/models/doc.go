// Package models holds the GORM persistence models for the finance domain.
// The finance aggregates are persistence-agnostic, so they map through these
// models on the way to and from the database. Trade and inventory aggregates
// carry their own gorm tags and are persisted directly.
package models
