// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/section"
	"github.com/farmops/fieldsync/validate"
)

// FarmInspection is the full inspection wizard. Section order is fixed;
// the draft section key doubles as the backend table name.
func FarmInspection() Wizard {
	return Wizard{
		Name: "farm_inspection",
		Sections: []section.Definition{
			{
				Name:      models.SectionPersonalInfo,
				TableName: models.SectionPersonalInfo,
				Title:     "Personal Info",
				Rules: validate.Rules{
					"farmer_name": {Required: true, Format: validate.FormatName, Label: "farmer name"},
					"nic":         {Required: true, Format: validate.FormatNationalID, Label: "national ID"},
					"phone":       {Required: true, Format: validate.FormatPhone, Label: "phone number"},
					"address":     {Required: true, Format: validate.FormatText, Label: "address"},
					"email":       {Format: validate.FormatText, Label: "email"},
				},
			},
			{
				Name:      models.SectionIDProof,
				TableName: models.SectionIDProof,
				Title:     "ID Proof",
				Rules: validate.Rules{
					"id_type":     {Required: true, Format: validate.FormatText, Label: "ID type"},
					"id_number":   {Required: true, Format: validate.FormatText, Label: "ID number"},
					"issued_date": {Format: validate.FormatText, Label: "issued date"},
				},
			},
			{
				Name:      models.SectionFinanceInfo,
				TableName: models.SectionFinanceInfo,
				Title:     "Finance Info",
				Rules: validate.Rules{
					"bank_name":          {Required: true, Format: validate.FormatText, Label: "bank name"},
					"branch":             {Required: true, Format: validate.FormatText, Label: "branch"},
					"account_holder":     {Required: true, Format: validate.FormatName, Label: "account holder"},
					"account_no":         {Required: true, Format: validate.FormatInteger, Label: "account number"},
					"confirm_account_no": {Required: true, Format: validate.FormatInteger, MatchField: "account_no", Label: "confirm account number"},
				},
			},
			{
				Name:      models.SectionLandInfo,
				TableName: models.SectionLandInfo,
				Title:     "Land Info",
				Rules: validate.Rules{
					"land_extent":  {Required: true, Format: validate.FormatDecimal, Label: "land extent"},
					"ownership":    {Required: true, Format: validate.FormatText, Label: "ownership"},
					"land_address": {Format: validate.FormatText, Label: "land address"},
				},
			},
			{
				Name:      models.SectionInvestmentInfo,
				TableName: models.SectionInvestmentInfo,
				Title:     "Investment Info",
				Rules: validate.Rules{
					"total_investment": {Required: true, Format: validate.FormatDecimal, Label: "total investment"},
					"own_funds":        {Format: validate.FormatDecimal, Label: "own funds"},
					"loan_amount":      {Format: validate.FormatDecimal, Label: "loan amount"},
					"funding_sources":  {Format: validate.FormatList, Label: "funding sources"},
				},
			},
			{
				Name:      models.SectionCultivationInfo,
				TableName: models.SectionCultivationInfo,
				Title:     "Cultivation Info",
				Rules: validate.Rules{
					"crops":              {Required: true, Format: validate.FormatList, Label: "crops"},
					"cultivation_extent": {Required: true, Format: validate.FormatDecimal, Label: "cultivation extent"},
					"irrigation_method":  {Format: validate.FormatText, Label: "irrigation method"},
				},
			},
			{
				Name:      models.SectionCroppingSystems,
				TableName: models.SectionCroppingSystems,
				Title:     "Cropping Systems",
				Rules: validate.Rules{
					"cropping_system": {Required: true, Format: validate.FormatText, Label: "cropping system"},
					"seasonal_crops":  {Format: validate.FormatList, Label: "seasonal crops"},
					"intercropping":   {Format: validate.FormatYesNo, Label: "intercropping"},
				},
			},
			{
				Name:      models.SectionProfitRisk,
				TableName: models.SectionProfitRisk,
				Title:     "Profit & Risk",
				Rules: validate.Rules{
					"profit":          {Required: true, Format: validate.FormatDecimal, Label: "profit"},
					"is_profitable":   {Required: true, Format: validate.FormatYesNo, Label: "profitability"},
					"has_risk":        {Required: true, Format: validate.FormatYesNo, Label: "risk flag"},
					"risk_type":       {Format: validate.FormatList, Label: "risk type"},
					"risk_mitigation": {Format: validate.FormatText, Label: "risk mitigation"},
					"risk_cost":       {Format: validate.FormatDecimal, Label: "risk cost"},
				},
				Clears: []section.ClearRule{
					{
						GoverningField: "has_risk",
						GoverningValue: models.YesNo(false),
						FieldsToClear:  []string{"risk_type", "risk_mitigation", "risk_cost"},
					},
				},
			},
			{
				Name:      models.SectionEconomical,
				TableName: models.SectionEconomical,
				Title:     "Economical",
				Rules: validate.Rules{
					"annual_income":  {Required: true, Format: validate.FormatDecimal, Label: "annual income"},
					"annual_expense": {Required: true, Format: validate.FormatDecimal, Label: "annual expense"},
					"net_profit":     {Format: validate.FormatDecimal, Label: "net profit"},
				},
			},
			{
				Name:      models.SectionLabour,
				TableName: models.SectionLabour,
				Title:     "Labour",
				Rules: validate.Rules{
					"family_labour": {Required: true, Format: validate.FormatInteger, Label: "family labour"},
					"hired_labour":  {Required: true, Format: validate.FormatInteger, Label: "hired labour"},
					"daily_wage":    {Format: validate.FormatDecimal, Label: "daily wage"},
				},
			},
			{
				Name:      models.SectionHarvestStorage,
				TableName: models.SectionHarvestStorage,
				Title:     "Harvest Storage",
				Rules: validate.Rules{
					"storage_method":    {Required: true, Format: validate.FormatText, Label: "storage method"},
					"storage_capacity":  {Format: validate.FormatDecimal, Label: "storage capacity"},
					"post_harvest_loss": {Format: validate.FormatDecimal, Label: "post-harvest loss"},
					"sells_direct":      {Format: validate.FormatYesNo, Label: "direct sales"},
				},
			},
		},
	}
}

// CapitalRequest is the shorter capital-request wizard. Its review
// section hydrates from the backend: the reviewing officer always sees
// the server's copy, so no offline draft applies there.
func CapitalRequest() Wizard {
	return Wizard{
		Name: "capital_request",
		Sections: []section.Definition{
			{
				Name:      "applicant_info",
				TableName: "capital_applicant",
				Title:     "Applicant Info",
				Rules: validate.Rules{
					"applicant_name": {Required: true, Format: validate.FormatName, Label: "applicant name"},
					"nic":            {Required: true, Format: validate.FormatNationalID, Label: "national ID"},
					"phone":          {Required: true, Format: validate.FormatPhone, Label: "phone number"},
				},
			},
			{
				Name:      "request_details",
				TableName: "capital_request",
				Title:     "Request Details",
				Rules: validate.Rules{
					"amount":           {Required: true, Format: validate.FormatDecimal, Label: "amount"},
					"purpose":          {Required: true, Format: validate.FormatText, Label: "purpose"},
					"duration_months":  {Required: true, Format: validate.FormatInteger, Label: "duration"},
					"has_collateral":   {Format: validate.FormatYesNo, Label: "collateral flag"},
					"collateral_type":  {Format: validate.FormatText, Label: "collateral type"},
					"collateral_value": {Format: validate.FormatDecimal, Label: "collateral value"},
				},
				Clears: []section.ClearRule{
					{
						GoverningField: "has_collateral",
						GoverningValue: models.YesNo(false),
						FieldsToClear:  []string{"collateral_type", "collateral_value"},
					},
				},
			},
			{
				Name:      "guarantor_info",
				TableName: "capital_guarantor",
				Title:     "Guarantor Info",
				Rules: validate.Rules{
					"guarantor_name":  {Required: true, Format: validate.FormatName, Label: "guarantor name"},
					"guarantor_nic":   {Required: true, Format: validate.FormatNationalID, Label: "guarantor national ID"},
					"guarantor_phone": {Format: validate.FormatPhone, Label: "guarantor phone"},
				},
			},
			{
				Name:          "officer_review",
				TableName:     "capital_review",
				Title:         "Officer Review",
				RemoteHydrate: true,
				Rules: validate.Rules{
					"recommendation": {Required: true, Format: validate.FormatText, Label: "recommendation"},
					"approved":       {Required: true, Format: validate.FormatYesNo, Label: "approval"},
				},
			},
		},
	}
}

// ByName looks up a built-in wizard.
func ByName(name string) (Wizard, bool) {
	switch name {
	case "farm_inspection":
		return FarmInspection(), true
	case "capital_request":
		return CapitalRequest(), true
	}
	return Wizard{}, false
}
