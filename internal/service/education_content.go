package service

import "github.com/stokvela/backend/internal/models"

// defaultCatalog is the built-in financial literacy content. English
// carries the full module set; the isiZulu and isiXhosa catalogs cover
// the introductory module, with English as the fallback for the rest.
var defaultCatalog = Catalog{
	"en": {
		{
			ID:          1,
			Title:       "Understanding Stokvels",
			Description: "Learn the basics of traditional South African savings groups",
			Content: []models.ContentBlock{
				{
					Type:    "text",
					Title:   "What is a Stokvel?",
					Content: "A stokvel is a type of credit union in which a group of people enter into an agreement to contribute a fixed amount of money to a common pool weekly, fortnightly or monthly.",
				},
				{
					Type:     "video",
					Title:    "History of Stokvels",
					URL:      "https://example.com/stokvel-history",
					Duration: "5:30",
				},
				{
					Type: "quiz",
					Questions: []models.QuizQuestion{
						{
							Question: "What is the main purpose of a stokvel?",
							Options:  []string{"Individual savings", "Group savings and support", "Investment only", "Lending money"},
							Correct:  1,
						},
					},
				},
			},
		},
		{
			ID:          2,
			Title:       "Digital Payments with MoMo",
			Description: "Master mobile money transactions and digital financial services",
			Content: []models.ContentBlock{
				{
					Type:    "text",
					Title:   "Benefits of Digital Payments",
					Content: "Digital payments offer security, convenience, and transparency. With MoMo, you can send money, pay bills, and manage your finances from your mobile phone.",
				},
				{
					Type:      "interactive",
					Title:     "MoMo Transaction Simulator",
					Component: "TransactionSimulator",
				},
			},
		},
		{
			ID:          3,
			Title:       "Building Credit and Savings",
			Description: "Learn how to build a strong financial foundation",
			Content: []models.ContentBlock{
				{
					Type:    "text",
					Title:   "The Importance of Saving",
					Content: "Regular saving helps you build an emergency fund, achieve financial goals, and create wealth over time.",
				},
				{
					Type:      "calculator",
					Title:     "Savings Calculator",
					Component: "SavingsCalculator",
				},
			},
		},
	},
	"zu": {
		{
			ID:          1,
			Title:       "Ukuqonda Ama-Stokvel",
			Description: "Funda izisekelo zamaqembu okonga aseNingizimu Afrika",
			Content: []models.ContentBlock{
				{
					Type:    "text",
					Title:   "Yini i-Stokvel?",
					Content: "I-stokvel iwuhlobo lwe-credit union lapho iqembu labantu lingena esivumelwaneni sokufaka imali eqinile ephoolini evamile ngeviki, ngesonto noma ngenyanga.",
				},
			},
		},
	},
	"xh": {
		{
			ID:          1,
			Title:       "Ukuqonda ii-Stokvel",
			Description: "Funda iziseko zamaqela okonga aseMzantsi Afrika",
			Content: []models.ContentBlock{
				{
					Type:    "text",
					Title:   "Yintoni i-Stokvel?",
					Content: "I-stokvel luhlobo lwe-credit union apho iqela labantu lingena kwisivumelwano sokufaka imali eqinileyo kwipuli eqhelekileyo ngeveki, ngeeveki ezimbini okanye ngenyanga.",
				},
			},
		},
	},
}
