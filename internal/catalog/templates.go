package catalog

import "github.com/denisok6893-rgb/warehouse-grading/internal/domain"

func param(name string, weight int, score float64, description string, tags ...domain.Category) domain.Parameter {
	return domain.Parameter{
		Name:        name,
		AIWeight:    weight,
		UserWeight:  weight,
		Score:       score,
		MaxScore:    domain.DefaultMaxScore,
		Description: description,
		Tags:        tags,
	}
}

// builtinTemplates are the AI-suggested criteria per business type.
// Tags mirror the keyword classification of each label.
func builtinTemplates() []Template {
	return []Template{
		{
			Name: "Food & Beverage",
			Parameters: []domain.Parameter{
				param("Cold Chain Infrastructure", 30, 7, "Multi-zone refrigeration, blast freezing capability",
					domain.CategoryThroughput),
				param("FSSAI & Regulatory Compliance", 25, 8, "Food safety licenses, audit readiness",
					domain.CategoryCompliance),
				param("Hygiene & Contamination Control", 20, 7, "Separate raw/cooked zones, pest barriers"),
				param("Transportation Connectivity", 15, 6, "Highway access, cold chain vehicle docks"),
				param("Power Backup & Reliability", 10, 8, "Uninterrupted power for refrigeration"),
			},
		},
		{
			Name: "E-commerce/General Storage",
			Parameters: []domain.Parameter{
				param("Fulfillment Efficiency", 25, 8, "Pick-pack zones, sortation capability",
					domain.CategoryThroughput, domain.CategoryCirculation),
				param("Last-Mile Connectivity", 25, 7, "Distance to delivery hubs, traffic access"),
				param("Automation Readiness", 20, 5, "Conveyor compatibility, WMS integration"),
				param("Scalability Infrastructure", 15, 7, "Modular racking, expansion potential",
					domain.CategoryCapacity, domain.CategoryThroughput),
				param("Security & Theft Prevention", 15, 6, "CCTV coverage, access control systems"),
			},
		},
		{
			Name: "Automotive Parts",
			Parameters: []domain.Parameter{
				param("Heavy Equipment Load Capacity", 30, 9, "Floor load rating >500 kg/sqm, crane compatibility",
					domain.CategoryCapacity, domain.CategoryCompliance),
				param("Parts Classification Systems", 25, 6, "Small parts racking, heavy component storage"),
				param("Hazmat Storage Compliance", 20, 8, "Oil/fluid containment, battery storage areas",
					domain.CategoryCapacity, domain.CategoryCompliance),
				param("Manufacturing Proximity", 15, 8, "Distance to auto plants, supplier networks"),
				param("Quality Control Environment", 10, 7, "Dust control, testing areas",
					domain.CategoryCompliance),
			},
		},
		{
			Name: "Pharmaceuticals",
			Parameters: []domain.Parameter{
				param("GMP & Regulatory Compliance", 35, 9, "FDA/WHO-GMP certification readiness",
					domain.CategoryCompliance),
				param("Environmental Validation", 30, 8, "Temperature mapping, humidity control"),
				param("Controlled Substance Security", 20, 8, "DEA-compliant storage, access logs"),
				param("Serialization & Track-Trace", 10, 6, "Barcode/RFID infrastructure"),
				param("Contamination Prevention", 5, 7, "Cleanroom standards, air filtration"),
			},
		},
	}
}
