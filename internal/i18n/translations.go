package i18n

var translations = map[string]map[Lang]string{
	"currency": {
		French:  "TND",
		English: "TND",
		Arabic:  "د.ت",
	},
	"email_subject": {
		French:  "Confirmation de votre commande",
		English: "Your order confirmation",
		Arabic:  "تأكيد طلبك",
	},
	"email_body_intro": {
		French:  "Bonjour %s,\n\nMerci pour votre commande. Voici les détails de votre commande :",
		English: "Hello %s,\n\nThank you for your order. Here are the details of your purchase:",
		Arabic:  "مرحبًا %s,\n\nشكرًا لك على طلبك. فيما يلي تفاصيل الطلب:",
	},
	"email_body_items": {
		French:  "Articles :",
		English: "Items:",
		Arabic:  "المنتجات:",
	},
	"email_body_total": {
		French:  "Total : %s TND",
		English: "Total: %s TND",
		Arabic:  "المجموع: %s د.ت",
	},
	"email_body_thanks": {
		French:  "Nous vous remercions de votre confiance et espérons vous revoir bientôt.",
		English: "We appreciate your business and hope to see you again soon.",
		Arabic:  "نشكرك على ثقتك ونأمل أن نراك مرة أخرى قريبًا.",
	},
	"email_payment_method": {
		French:  "Mode de paiement : %s",
		English: "Payment method: %s",
		Arabic:  "طريقة الدفع: %s",
	},
	"email_card": {
		French:  "Carte : %s",
		English: "Card: %s",
		Arabic:  "البطاقة: %s",
	},
	"email_cash_on_delivery": {
		French:  "Paiement à la livraison",
		English: "Payable on delivery",
		Arabic:  "الدفع عند الاستلام",
	},
	"email_phone": {
		French:  "Téléphone : %s",
		English: "Phone: %s",
		Arabic:  "الهاتف: %s",
	},
	"email_address": {
		French:  "Adresse : %s",
		English: "Address: %s",
		Arabic:  "العنوان: %s",
	},
	"order_success_message": {
		French:  "Votre commande a été enregistrée avec succès.",
		English: "Your order has been placed successfully.",
		Arabic:  "تم تسجيل طلبك بنجاح.",
	},
}
