package model

// Table binds a model to the foreign keys its table declares.
type Table struct {
	Name        string
	Model       any
	ForeignKeys []string
}

// Tables lists every table in creation order: a table only references tables before it.
var Tables = []Table{
	{Name: "sources", Model: (*Source)(nil)},
	{Name: "schedules", Model: (*Schedule)(nil)},
	{Name: "patients", Model: (*Patient)(nil), ForeignKeys: []string{
		`("source_id") REFERENCES "sources" ("source_id") ON DELETE CASCADE`,
		`("draw_schedule_id") REFERENCES "schedules" ("schedule_id") ON DELETE SET NULL`,
	}},
	{Name: "events", Model: (*Event)(nil)},
	{Name: "visits", Model: (*Visit)(nil)},
	{Name: "specimen_types", Model: (*SpecimenType)(nil)},
	{Name: "specimens", Model: (*Specimen)(nil), ForeignKeys: []string{
		`("patient_id") REFERENCES "patients" ("patient_id") ON DELETE CASCADE`,
		`("specimen_type_id") REFERENCES "specimen_types" ("specimen_type_id") ON DELETE CASCADE`,
	}},
	{Name: "aliquot_types", Model: (*AliquotType)(nil)},
	{Name: "aliquots", Model: (*Aliquot)(nil), ForeignKeys: []string{
		`("specimen_id") REFERENCES "specimens" ("specimen_id") ON DELETE CASCADE`,
		`("aliquot_type_id") REFERENCES "aliquot_types" ("aliquot_type_id") ON DELETE CASCADE`,
		`("visit_id") REFERENCES "visits" ("visit_id") ON DELETE SET NULL`,
	}},
	{Name: "storage_locations", Model: (*StorageLocation)(nil), ForeignKeys: []string{
		`("container_id") REFERENCES "storage_locations" ("storage_location_id") ON DELETE SET NULL`,
	}},
	{Name: "carriers", Model: (*Carrier)(nil)},
	{Name: "destinations", Model: (*Destination)(nil)},
	{Name: "shipments", Model: (*Shipment)(nil), ForeignKeys: []string{
		`("carrier_id") REFERENCES "carriers" ("carrier_id") ON DELETE SET NULL`,
		`("destination_id") REFERENCES "destinations" ("destination_id") ON DELETE SET NULL`,
	}},
	{Name: "box_types", Model: (*BoxType)(nil)},
	{Name: "boxes", Model: (*Box)(nil), ForeignKeys: []string{
		`("box_type_id") REFERENCES "box_types" ("box_type_id") ON DELETE CASCADE`,
		`("storage_location_id") REFERENCES "storage_locations" ("storage_location_id") ON DELETE SET NULL`,
		`("shipment_id") REFERENCES "shipments" ("shipment_id") ON DELETE SET NULL`,
	}},
	{Name: "box_slots", Model: (*BoxSlot)(nil), ForeignKeys: []string{
		`("box_id") REFERENCES "boxes" ("box_id") ON DELETE CASCADE`,
		`("aliquot_id") REFERENCES "aliquots" ("aliquot_id") ON DELETE CASCADE`,
	}},
	{Name: "users", Model: (*User)(nil)},
}
