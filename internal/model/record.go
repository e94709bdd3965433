package model

import "time"

// MusicRecord is a catalog entry managed through plain CRUD. Records
// have no availability semantics and no dependent reservations; they
// exist alongside the reservation domains as simple inventory.
//
// Fields:
//  ID            – primary key identifier.
//  Artist        – performing artist.
//  Album         – album title.
//  Genre         – musical genre.
//  PriceCents    – retail price in cents.
//  StockQuantity – units in stock.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type MusicRecord struct {
	ID            uint64    `json:"id"`             // music_records.id
	Artist        string    `json:"artist"`         // music_records.artist
	Album         string    `json:"album"`          // music_records.album
	Genre         string    `json:"genre"`          // music_records.genre
	PriceCents    uint32    `json:"price_cents"`    // music_records.price_cents
	StockQuantity uint32    `json:"stock_quantity"` // music_records.stock_quantity
	CreatedAt     time.Time `json:"created_at"`     // music_records.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // music_records.updated_at
}
