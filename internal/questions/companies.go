package questions

var companies = []string{
	"adobe", "airtel", "amazon", "amex", "app_dynamics", "apple", "arista",
	"atlassian", "audible", "bookingcom", "capitol_one", "cisco", "deshaw",
	"deutsche_bank", "flipkart", "goldman sachs", "google", "ibm", "infosys",
	"intel", "intuit", "jpmorgan", "mathworks", "meta", "microsoft", "nvidia",
	"oracle", "paypal", "paytm", "phonepe", "pinterest", "qualcomm", "salesforce",
	"samsung", "saplabs", "servicenow", "snapchat", "spotify", "uber", "visa",
	"walmart", "wayfair", "zoho", "zscaler",
}

// Companies returns the company keys questions can be requested for, in display order.
func Companies() []string {
	return append([]string(nil), companies...)
}
