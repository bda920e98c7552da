package model

import (
	"time"

	"oja-pos-licensing/internal/domain/activation"
)

// Feature names a gated capability of the point-of-sale client.
type Feature string

const (
	FeatureSell             Feature = "sell"
	FeatureViewInventory    Feature = "view_inventory"
	FeatureAddProduct       Feature = "add_product"
	FeatureBasicReports     Feature = "basic_reports"
	FeatureCreditBook       Feature = "credit_book"
	FeatureWhatsAppReceipts Feature = "whatsapp_receipts"
	FeatureSingleStaff      Feature = "single_staff"
	FeaturePinLock          Feature = "pin_lock"
	FeatureExportData       Feature = "export_data"

	FeatureMultiStaff        Feature = "multi_staff"
	FeatureAdvancedReports   Feature = "advanced_reports"
	FeatureCloudSync         Feature = "cloud_sync"
	FeaturePayroll           Feature = "payroll"
	FeatureLowStockAlerts    Feature = "low_stock_alerts"
	FeatureReceiptPrinter    Feature = "receipt_printer"
	FeatureUnlimitedProducts Feature = "unlimited_products"
)

// FreeProductLimit caps the catalogue size on the starter plan.
const FreeProductLimit = 50

// FeatureAccess maps each feature to the lowest plan that includes it.
var FeatureAccess = map[Feature]activation.Plan{
	FeatureSell:             activation.PlanStarter,
	FeatureViewInventory:    activation.PlanStarter,
	FeatureAddProduct:       activation.PlanStarter,
	FeatureBasicReports:     activation.PlanStarter,
	FeatureCreditBook:       activation.PlanStarter,
	FeatureWhatsAppReceipts: activation.PlanStarter,
	FeatureSingleStaff:      activation.PlanStarter,
	FeaturePinLock:          activation.PlanStarter,
	FeatureExportData:       activation.PlanStarter,

	FeatureMultiStaff:        activation.PlanBusiness,
	FeatureAdvancedReports:   activation.PlanBusiness,
	FeatureCloudSync:         activation.PlanBusiness,
	FeaturePayroll:           activation.PlanBusiness,
	FeatureLowStockAlerts:    activation.PlanBusiness,
	FeatureReceiptPrinter:    activation.PlanBusiness,
	FeatureUnlimitedProducts: activation.PlanBusiness,
}

// CanAccess reports whether sub unlocks feature at now. Unknown features
// are open; premium features need a paid plan that has not expired.
func CanAccess(feature Feature, sub *ShopSubscription, now time.Time) bool {
	required, ok := FeatureAccess[feature]
	if !ok || required == activation.PlanStarter {
		return true
	}
	return sub.IsPremium(now)
}

// ProductLimit returns the catalogue cap for sub, or 0 for unlimited.
func ProductLimit(sub *ShopSubscription, now time.Time) int {
	if CanAccess(FeatureUnlimitedProducts, sub, now) {
		return 0
	}
	return FreeProductLimit
}
