package semantic

import (
	"encoding/json"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

// Payload field names. Specifications are stored as a JSON string because the
// index only supports flat payload values and lists.
const (
	fieldPartNumber       = "part_number"
	fieldName             = "name"
	fieldDescription      = "description"
	fieldCategory         = "category"
	fieldSubcategory      = "subcategory"
	fieldBrand            = "brand"
	fieldPrice            = "price"
	fieldOriginalPrice    = "original_price"
	fieldDiscount         = "discount"
	fieldImageURL         = "image_url"
	fieldInStock          = "in_stock"
	fieldStockCount       = "stock_count"
	fieldRating           = "rating"
	fieldReviewCount      = "review_count"
	fieldCompatibleModels = "compatible_models"
	fieldDeliveryEstimate = "delivery_estimate"
	fieldSpecifications   = "specifications"
	fieldInstallSteps     = "installation_steps"
	fieldTroubleshooting  = "troubleshooting_tips"
)

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func intValue(n int64) *pb.Value {
	return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: n}}
}

func doubleValue(f float64) *pb.Value {
	return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: f}}
}

func boolValue(b bool) *pb.Value {
	return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: b}}
}

func listValue(items []string) *pb.Value {
	vals := make([]*pb.Value, len(items))
	for i, s := range items {
		vals[i] = stringValue(s)
	}
	return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: vals}}}
}

// productPayload flattens a catalog.Product into a Qdrant payload map.
func productPayload(p catalog.Product) map[string]*pb.Value {
	payload := map[string]*pb.Value{
		fieldPartNumber:       stringValue(p.PartNumber),
		fieldName:             stringValue(p.Name),
		fieldDescription:      stringValue(p.Description),
		fieldCategory:         stringValue(p.Category),
		fieldSubcategory:      stringValue(p.Subcategory),
		fieldBrand:            stringValue(p.Brand),
		fieldPrice:            doubleValue(p.Price),
		fieldOriginalPrice:    doubleValue(p.OriginalPrice),
		fieldDiscount:         intValue(int64(p.Discount)),
		fieldInStock:          boolValue(p.InStock),
		fieldStockCount:       intValue(int64(p.StockCount)),
		fieldRating:           doubleValue(p.Rating),
		fieldReviewCount:      intValue(int64(p.ReviewCount)),
		fieldCompatibleModels: listValue(p.CompatibleModels),
		fieldInstallSteps:     listValue(p.InstallationSteps),
		fieldTroubleshooting:  listValue(p.TroubleshootingTips),
	}
	if p.ImageURL != "" {
		payload[fieldImageURL] = stringValue(p.ImageURL)
	}
	if p.DeliveryEstimate != "" {
		payload[fieldDeliveryEstimate] = stringValue(p.DeliveryEstimate)
	}
	if len(p.Specifications) > 0 {
		if raw, err := json.Marshal(p.Specifications); err == nil {
			payload[fieldSpecifications] = stringValue(string(raw))
		}
	}
	return payload
}

// productFromPayload reconstructs a catalog.Product from a payload map.
func productFromPayload(id string, payload map[string]*pb.Value) catalog.Product {
	p := catalog.Product{ID: id}
	for key, val := range payload {
		switch key {
		case fieldPartNumber:
			p.PartNumber = val.GetStringValue()
		case fieldName:
			p.Name = val.GetStringValue()
		case fieldDescription:
			p.Description = val.GetStringValue()
		case fieldCategory:
			p.Category = val.GetStringValue()
		case fieldSubcategory:
			p.Subcategory = val.GetStringValue()
		case fieldBrand:
			p.Brand = val.GetStringValue()
		case fieldPrice:
			p.Price = val.GetDoubleValue()
		case fieldOriginalPrice:
			p.OriginalPrice = val.GetDoubleValue()
		case fieldDiscount:
			p.Discount = int(val.GetIntegerValue())
		case fieldImageURL:
			p.ImageURL = val.GetStringValue()
		case fieldInStock:
			p.InStock = val.GetBoolValue()
		case fieldStockCount:
			p.StockCount = int(val.GetIntegerValue())
		case fieldRating:
			p.Rating = val.GetDoubleValue()
		case fieldReviewCount:
			p.ReviewCount = int(val.GetIntegerValue())
		case fieldCompatibleModels:
			p.CompatibleModels = stringList(val)
		case fieldInstallSteps:
			p.InstallationSteps = stringList(val)
		case fieldTroubleshooting:
			p.TroubleshootingTips = stringList(val)
		case fieldDeliveryEstimate:
			p.DeliveryEstimate = val.GetStringValue()
		case fieldSpecifications:
			var specs map[string]string
			if err := json.Unmarshal([]byte(val.GetStringValue()), &specs); err == nil {
				p.Specifications = specs
			}
		}
	}
	return p
}

func stringList(val *pb.Value) []string {
	list := val.GetListValue()
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if s := v.GetStringValue(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
