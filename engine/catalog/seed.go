package catalog

// SeedProducts is the built-in catalog used by cmd/indexer and tests. IDs are
// assigned at index time so re-indexing produces stable point IDs derived
// from the part number.
var SeedProducts = []Product{
	{
		PartNumber:    "W10295370A",
		Name:          "EveryDrop Refrigerator Water Filter 1",
		Description:   "Certified to reduce 28 contaminants including lead, pesticides, pharmaceuticals, and waterborne parasites. Genuine Whirlpool replacement filter.",
		Price:         49.99,
		OriginalPrice: 54.99,
		Discount:      9,
		Category:      CategoryRefrigerator,
		Subcategory:   "filters",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    122,
		Rating:        4.7,
		ReviewCount:   2841,
		CompatibleModels: []string{
			"WRF535SMBM00", "WRS325FDAM04", "WRS325FDAM02",
			"WRX735SDBM00", "WRF535SWHZ", "WRS571CIHZ",
		},
		DeliveryEstimate: "1-3 business days",
		Specifications: map[string]string{
			"dimensions":    "2.5 x 2.5 x 8.5 inches",
			"filter_life":   "6 months or 200 gallons",
			"filter_type":   "Carbon",
			"certification": "NSF 42, 53, 401",
			"replaces_part": "W10295370, W10276924",
		},
		InstallationSteps: []string{
			"Turn off the refrigerator and unplug it from the power outlet.",
			"Locate the water filter housing in the refrigerator compartment (typically in the upper right corner).",
			"Twist the old filter counterclockwise and pull to remove.",
			"Remove the protective cap from the new filter.",
			"Insert the new filter into the housing and twist clockwise until it locks into place.",
			"Run 4 gallons of water through the dispenser to remove air and contaminants.",
			"Reset the filter indicator light if your model has one.",
		},
		TroubleshootingTips: []string{
			"If water flow is reduced after installation, check that the filter is properly locked in place.",
			"If you notice black particles in the water after installation, flush the system with additional water.",
			"If the filter is difficult to install, check for proper alignment with the housing.",
		},
	},
	{
		PartNumber:    "WPW10730972",
		Name:          "Refrigerator Evaporator Fan Motor",
		Description:   "Replacement evaporator fan motor that circulates air over the refrigerator and freezer coils during the cooling cycle. Resolves noisy operation issues and improves cooling efficiency.",
		Price:         65.49,
		OriginalPrice: 79.99,
		Discount:      18,
		Category:      CategoryRefrigerator,
		Subcategory:   "fans and blowers",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    34,
		Rating:        4.8,
		ReviewCount:   731,
		CompatibleModels: []string{
			"LFSS2612TF0", "FGHS2631PF4A", "WRS325FDAM04",
			"MFI2568AES", "WRF535SMBM00", "FGHC2331PFAA",
		},
		DeliveryEstimate: "2-3 business days",
		Specifications: map[string]string{
			"voltage":       "115V",
			"rpm":           "3000",
			"direction":     "Clockwise",
			"mounting":      "Bracket Mount",
			"replaces_part": "W10189703, WPW10189703",
		},
		InstallationSteps: []string{
			"Unplug refrigerator from electrical outlet.",
			"Remove all food from freezer section.",
			"Remove freezer shelf and back panel to access evaporator fan.",
			"Disconnect wire harness from old fan motor.",
			"Remove mounting screws and brackets holding the fan in place.",
			"Install fan blade onto new motor and mount using existing brackets.",
			"Reconnect wire harness, reinstall back panel, and restore power.",
		},
		TroubleshootingTips: []string{
			"If refrigerator is noisy after fan replacement, check that fan blade isn't contacting any surface.",
			"If refrigerator isn't cooling properly, ensure the fan is operating and air flow isn't blocked.",
			"If fan doesn't run, verify proper electrical connection and that freezer temperature is calling for cooling.",
		},
	},
	{
		PartNumber:    "DA97-07603B",
		Name:          "Samsung Refrigerator Ice Maker Assembly",
		Description:   "Complete ice maker assembly replacement for Samsung refrigerators. Resolves issues with ice maker not making ice or producing small/hollow cubes.",
		Price:         119.99,
		OriginalPrice: 149.95,
		Discount:      20,
		Category:      CategoryRefrigerator,
		Subcategory:   "ice makers",
		Brand:         "Samsung",
		InStock:       true,
		StockCount:    18,
		Rating:        4.3,
		ReviewCount:   1247,
		CompatibleModels: []string{
			"RF28HFEDBSR", "RF263BEAESR", "RF24FSEDBSR",
			"RF25HMEDBSR", "RF28HMEDBSR", "RF34H9950S4",
		},
		DeliveryEstimate: "2-4 business days",
		Specifications: map[string]string{
			"voltage":        "115V",
			"ice_production": "3-4 lbs per day",
			"dimensions":     "8.5 x 4.2 x 6.8 inches",
			"replaces_part":  "DA97-07603A, DA97-05554A",
		},
		InstallationSteps: []string{
			"Unplug refrigerator and turn off the water supply.",
			"Remove ice bucket and shelving to access the ice maker.",
			"Disconnect the water line and wire harness from the old assembly.",
			"Remove mounting screws and lift out the old ice maker.",
			"Install the new ice maker, reconnect harness and water line.",
			"Restore water and power; discard the first few batches of ice.",
		},
		TroubleshootingTips: []string{
			"If ice maker doesn't produce ice, check water supply and ensure valve is fully open.",
			"If ice cubes are small or hollow, water pressure may be too low.",
			"If ice maker doesn't cycle, check for frozen water line or clogged water filter.",
		},
	},
	{
		PartNumber:    "WR55X10942",
		Name:          "GE Refrigerator Water Inlet Valve",
		Description:   "Replacement water inlet valve that controls the flow of water to the ice maker and water dispenser. Fixes issues with water not dispensing or ice maker not filling.",
		Price:         52.95,
		OriginalPrice: 64.99,
		Discount:      19,
		Category:      CategoryRefrigerator,
		Subcategory:   "valves",
		Brand:         "GE",
		InStock:       true,
		StockCount:    41,
		Rating:        4.6,
		ReviewCount:   703,
		CompatibleModels: []string{
			"GSH25JSTASS", "GSL25JFPABS", "PSS26SGPASS",
			"GFSS2HCYCSS", "PFS22SISBSS", "GSE25HMHES",
		},
		DeliveryEstimate: "2-4 business days",
		Specifications: map[string]string{
			"voltage":         "120V",
			"connection_type": "Quick Connect",
			"inlet_size":      "1/4 inch",
			"replaces_part":   "WR55X10942P, WR55X23290, WR55X10025",
		},
		InstallationSteps: []string{
			"Turn off water supply and unplug the refrigerator.",
			"Pull refrigerator away from wall to access the water valve at the bottom rear.",
			"Disconnect the water line and electrical connections from the old valve.",
			"Install the new valve, reconnect electrical terminals and water line.",
			"Turn on water supply, check for leaks, and restore power.",
			"Run the water dispenser for several minutes to purge air from the lines.",
		},
		TroubleshootingTips: []string{
			"If water dispenser doesn't work after valve replacement, check electrical connections.",
			"If valve leaks after installation, ensure water line is properly seated and clamps are tight.",
			"If ice maker doesn't fill, verify water pressure is at least 20 PSI.",
		},
	},
	{
		PartNumber:    "W10309240",
		Name:          "Refrigerator Door Gasket",
		Description:   "Replacement door seal that prevents cold air from escaping the refrigerator. Addresses issues with door sweating, excessive frost, or temperature fluctuations.",
		Price:         47.95,
		OriginalPrice: 59.99,
		Discount:      20,
		Category:      CategoryRefrigerator,
		Subcategory:   "seals and gaskets",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    63,
		Rating:        4.4,
		ReviewCount:   512,
		CompatibleModels: []string{
			"WRF535SMBM00", "WRS325FDAM04", "WRX735SDBM00",
			"WRF555SDFZ", "WRS588FIHZ",
		},
		DeliveryEstimate: "2-3 business days",
		Specifications: map[string]string{
			"color":         "Gray",
			"material":      "Vinyl",
			"mounting":      "Push-in Dart",
			"replaces_part": "W10443245, 2319270",
		},
		InstallationSteps: []string{
			"Soak the new gasket in warm water to make it pliable.",
			"Starting at a top corner, pull the old gasket out of its retainer channel.",
			"Press the new gasket's dart edge into the channel, working around the door.",
			"Close the door and check for gaps; adjust as needed.",
		},
		TroubleshootingTips: []string{
			"If the door doesn't seal after replacement, warm the gasket with a hair dryer and reshape.",
			"Frost buildup along the door edge usually means a section of gasket is not seated.",
		},
	},
	{
		PartNumber:    "W10350375",
		Name:          "Dishwasher Drain Pump Motor Assembly",
		Description:   "Replacement drain pump used to force water out of the dishwasher during the drain cycle. Fixes dishwashers that aren't draining properly.",
		Price:         89.95,
		OriginalPrice: 104.99,
		Discount:      14,
		Category:      CategoryDishwasher,
		Subcategory:   "pumps",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    48,
		Rating:        4.6,
		ReviewCount:   932,
		CompatibleModels: []string{
			"WDT750SAHZ0", "WDT970SAHZ0", "WDTA50SAHZ0",
			"JDB1100AWS", "WDF520PADM7", "MDB8959SFZ4",
		},
		DeliveryEstimate: "2-4 business days",
		Specifications: map[string]string{
			"voltage":         "120V",
			"motor_type":      "Synchronous",
			"connection_type": "Direct Wire",
			"replaces_part":   "W10348269, 8558995, W10084573",
		},
		InstallationSteps: []string{
			"Disconnect power to the dishwasher and shut off water supply.",
			"Remove the lower access panel and toe kick to access the pump assembly.",
			"Disconnect the electrical connector and twist the pump counter-clockwise to remove.",
			"Install the new pump by aligning and twisting clockwise until it locks in place.",
			"Reconnect the wiring, reinstall the access panel, and run a test cycle.",
		},
		TroubleshootingTips: []string{
			"If dishwasher still isn't draining after pump replacement, check for clogs in the drain hose.",
			"Unusual noise during draining may indicate debris caught in the pump.",
			"If pump runs continuously, check the float switch for proper operation.",
		},
	},
	{
		PartNumber:    "W10195840",
		Name:          "Dishwasher Door Latch Assembly",
		Description:   "Complete door latch assembly with switches that secure the dishwasher door and allow the dishwasher to operate. Fixes issues with dishwasher not starting or door not latching properly.",
		Price:         41.99,
		OriginalPrice: 48.50,
		Discount:      13,
		Category:      CategoryDishwasher,
		Subcategory:   "latches",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    56,
		Rating:        4.5,
		ReviewCount:   622,
		CompatibleModels: []string{
			"WDT750SAHZ0", "FGID2466QF4A", "KDTE254ESS2",
			"KDTM354DSS4", "LDF6920ST", "WDF520PADM7",
		},
		DeliveryEstimate: "1-3 business days",
		Specifications: map[string]string{
			"material":          "Plastic/Metal",
			"includes_switches": "Yes",
			"replaces_part":     "W10195839, 8193830, WPW10195840",
		},
		InstallationSteps: []string{
			"Disconnect power to the dishwasher.",
			"Open the door and remove the inner door panel screws.",
			"Disconnect wire harnesses from the latch switches and remove the old latch.",
			"Install the new latch assembly, reconnect harnesses, and reinstall the panel.",
			"Restore power and test door latch operation.",
		},
		TroubleshootingTips: []string{
			"If dishwasher won't start after latch replacement, verify all wire connections are secure.",
			"If door doesn't latch properly, check alignment of strike plate on the tub.",
			"Clicking sound without starting could indicate a faulty switch within the latch assembly.",
		},
	},
	{
		PartNumber:    "WP8268743",
		Name:          "Dishwasher Filter Assembly",
		Description:   "Replacement filter system that traps food particles during the wash cycle. Fixes dishwashers with poor cleaning performance due to clogged filters.",
		Price:         28.95,
		OriginalPrice: 34.99,
		Discount:      17,
		Category:      CategoryDishwasher,
		Subcategory:   "filters",
		Brand:         "Whirlpool",
		InStock:       true,
		StockCount:    87,
		Rating:        4.8,
		ReviewCount:   426,
		CompatibleModels: []string{
			"WDT750SAHZ0", "WDTA50SAHZ0", "WDT970SAHZ0",
			"KDTM354DSS4", "MDB8959SFZ4", "JDB1100AWS",
		},
		DeliveryEstimate: "1-3 business days",
		Specifications: map[string]string{
			"filter_type":   "Manual Clean",
			"material":      "Plastic/Stainless Steel Mesh",
			"components":    "Coarse and Fine Filters",
			"replaces_part": "W10807920, 8562080, WPW10807920",
		},
		InstallationSteps: []string{
			"Open dishwasher and remove bottom rack.",
			"Remove the old filter by turning counter-clockwise and lifting out.",
			"Clean the filter housing area of any debris.",
			"Insert new filter, turn clockwise to lock, and replace the bottom rack.",
			"Run a rinse cycle to ensure proper installation.",
		},
		TroubleshootingTips: []string{
			"Regular cleaning of the filter (every 1-3 months) will improve dishwasher performance.",
			"If dishes still have food particles after cleaning, ensure filter is properly locked in place.",
			"Soaking dirty filter in warm, soapy water can help remove stubborn debris.",
		},
	},
}
