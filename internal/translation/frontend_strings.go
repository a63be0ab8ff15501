package translation

// frontendStrings is the English copy of every static UI string the site
// renders outside catalog records.
var frontendStrings = map[string]string{
	"home_title":                 "LingYe Aluminum",
	"home_subtitle":              "Providing high-quality aluminum profile solutions to meet your various needs. 20 years of professional experience, exporting to 30+ countries worldwide, a trustworthy partner.",
	"home_cta_button":            "Inquire Now",
	"home_why_choose_title":      "Why Choose Us",
	"home_why_choose_subtitle":   "We have a professional team and advanced technology",
	"home_new_products_title":    "New Products",
	"home_new_products_subtitle": "Latest high-quality products",
	"home_quote_title":           "Request A Free Quote",
	"home_quote_subtitle":        "You can contact us any way that is convenient for you. We provide services 24/7 via fax, email or telephone.",

	"nav_home":     "Home",
	"nav_products": "Products",
	"nav_news":     "News",
	"nav_about":    "About Us",
	"nav_contact":  "Contact",

	"page_products_title":    "Products",
	"page_products_subtitle": "Rich product line to meet various application needs",
	"page_news_title":        "News",
	"page_news_subtitle":     "Learn about the latest technology trends and industry information",
	"page_about_title":       "About Us",
	"page_about_subtitle":    "Learn about our company history and advantages",
	"page_contact_title":     "Contact Us",
	"page_contact_subtitle":  "Always ready to provide professional service support",

	"btn_view_details":  "View Details",
	"btn_learn_more":    "Learn More",
	"btn_contact_us":    "Contact Us",
	"btn_request_quote": "Get Quote",
	"btn_search":        "Search",
	"btn_filter":        "Filter",
	"btn_clear":         "Clear",
	"btn_submit":        "Submit",
	"btn_cancel":        "Cancel",
	"btn_close":         "Close",

	"form_name":     "Name",
	"form_email":    "Email",
	"form_phone":    "Phone",
	"form_message":  "Message",
	"form_company":  "Company",
	"form_subject":  "Subject",
	"form_required": "Required",
	"form_optional": "Optional",

	"status_loading": "Loading...",
	"status_no_data": "No Data",
	"status_error":   "Load Failed",
	"status_success": "Success",
	"status_failed":  "Failed",

	"footer_copyright": "© 2024 Aluminum Profile Manufacturer. All rights reserved.",
	"footer_address":   "Address",
	"footer_phone":     "Phone",
	"footer_email":     "Email",
	"footer_wechat":    "WeChat",
	"footer_whatsapp":  "WhatsApp",

	"contact_24_7":              "24/7 Service",
	"contact_free_quote":        "Free Quote",
	"contact_technical_support": "Technical Support",
	"contact_sales_inquiry":     "Sales Inquiry",

	"product_features":       "Product Features",
	"product_applications":   "Applications",
	"product_specifications": "Specifications",
	"product_inquiry":        "Product Inquiry",
	"product_category":       "Product Category",
	"product_search":         "Search Products",
	"product_filter":         "Filter Products",

	"news_title":     "News",
	"news_subtitle":  "Learn about the latest technology trends and industry information",
	"news_latest":    "Latest News",
	"news_popular":   "Popular Articles",
	"news_category":  "News Category",
	"news_read_more": "Read More",
	"news_published": "Published",
	"news_author":    "Author",
	"news_tags":      "Tags",
	"news_search":    "Search News",
	"news_filter":    "Filter News",

	"about_history":      "Company History",
	"about_mission":      "Company Mission",
	"about_vision":       "Company Vision",
	"about_values":       "Company Values",
	"about_team":         "Team Introduction",
	"about_certificates": "Certificates",
	"about_factory":      "Factory Showcase",

	// Language switcher labels are endonyms and are never translated.
	"lang_en": "English",
	"lang_zh": "中文",
	"lang_es": "Español",
	"lang_pt": "Português",
}
