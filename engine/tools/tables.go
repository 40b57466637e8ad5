package tools

// Fallback data used when the product index has no answer. Keyed by
// PartSelect part number and by (appliance, issue) respectively.

var fallbackInstallationSteps = map[string][]string{
	"PS11752778": {
		"Turn off the refrigerator and unplug it from the power outlet.",
		"Locate the water filter housing in the upper right corner of the refrigerator interior.",
		"Press the release button on the old filter and pull it out.",
		"Remove the protective cap from the new filter.",
		"Align the new filter with the filter housing and push it in until it clicks.",
		"Run 4 gallons of water through the dispenser to purge air and contaminants from the system.",
	},
	"PS11748915": {
		"Turn off the dishwasher and disconnect power.",
		"Remove the lower dish rack to access the bottom of the dishwasher.",
		"Locate the pump assembly at the bottom center of the tub.",
		"Remove any standing water using a towel or sponge.",
		"Unscrew the old pump assembly by turning counterclockwise.",
		"Install the new pump assembly and turn clockwise to secure.",
		"Reconnect power and run a test cycle with the dishwasher empty.",
	},
}

var fallbackTroubleshootingTips = map[string]map[string][]string{
	"refrigerator": {
		"ice maker not working": {
			"Check if the ice maker arm is in the down position.",
			"Ensure the water supply line to the refrigerator is not kinked or frozen.",
			"Verify the water filter is not clogged and is installed correctly.",
			"Check the freezer temperature (should be between 0-5°F or -18 to -15°C).",
			"Inspect the water inlet valve for proper operation.",
			"Look for ice buildup in the ice maker assembly.",
		},
		"not cooling": {
			"Check if the refrigerator is plugged in and receiving power.",
			"Verify the temperature controls are set correctly.",
			"Ensure vents inside the refrigerator are not blocked by food items.",
			"Clean the condenser coils located at the bottom or back of the unit.",
			"Check if the evaporator fan is running.",
			"Inspect the door gaskets for proper sealing.",
		},
	},
	"dishwasher": {
		"not draining": {
			"Remove and clean the drain filter at the bottom of the dishwasher.",
			"Check for clogs in the drain hose.",
			"Ensure the air gap (if present) is not blocked.",
			"Verify the garbage disposal (if connected) is clear and working.",
			"Inspect the drain pump for proper operation.",
			"Check for kinks in the drain line.",
		},
		"dishes not clean": {
			"Check and clean the spray arms for any clogs.",
			"Ensure proper loading of dishes without overcrowding.",
			"Verify water temperature is hot enough (120-125°F or 49-52°C).",
			"Check and clean the filter system.",
			"Use the appropriate amount and type of detergent.",
			"Inspect water inlet valve for proper flow.",
		},
	},
}
