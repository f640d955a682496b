package documents

import (
	"html/template"
	"strings"
)

// Layout data for the three document types. All dates are preformatted
// YYYY-MM-DD strings; amounts are integer minor units.

type NoticeData struct {
	NoticeNo        string
	IssuedAt        string
	Deadline        string
	LandlordName    string
	LandlordAddress string
	TenantName      string
	TenantAddress   string
	PropertyLabel   string
	UnitLabel       string
	Period          string
	DueDate         string
	Amount          int64
	Currency        string
	GraceDays       int
}

type ReminderData struct {
	ReminderNo      string
	IssuedAt        string
	LandlordName    string
	LandlordAddress string
	TenantName      string
	TenantAddress   string
	PropertyLabel   string
	UnitLabel       string
	Period          string
	DueDate         string
	Amount          int64
	Currency        string
	GraceDays       int
}

type ReceiptData struct {
	ReceiptNo        string
	IssuedAt         string
	LandlordName     string
	LandlordAddress  string
	LandlordIDNumber string
	TenantName       string
	PropertyLabel    string
	UnitLabel        string
	Period           string
	Amount           int64
	Currency         string
	PaidAt           string
}

var noticeTmpl = template.Must(template.New("notice").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Mise en demeure {{.NoticeNo}}</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 32px; line-height: 1.35; }
    h1 { margin:0; font-size:20px; }
    .muted { color:#444; font-size:12px; }
    .box { border:1px solid #222; padding:16px; border-radius:8px; margin-top:16px; }
    .row { display:flex; justify-content:space-between; gap:16px; }
    .k { font-weight:bold; }
    .sig { margin-top:48px; border-top:1px solid #222; padding-top:8px; width:320px; font-size:12px; }
  </style>
</head>
<body>
  <div class="row">
    <div>
      <h1>MISE EN DEMEURE DE PAYER</h1>
      <div class="muted">N° {{.NoticeNo}} · Émise le {{.IssuedAt}}</div>
    </div>
    <div class="muted" style="text-align:right">
      {{.PropertyLabel}} — {{.UnitLabel}}<br/>
      Période concernée: {{.Period}}
    </div>
  </div>

  <div class="box">
    <div class="row">
      <div>
        <div class="k">Bailleur</div>
        <div>{{.LandlordName}}</div>
        {{if .LandlordAddress}}<div class="muted">{{.LandlordAddress}}</div>{{end}}
      </div>
      <div style="text-align:right">
        <div class="k">Locataire</div>
        <div>{{.TenantName}}</div>
        {{if .TenantAddress}}<div class="muted">{{.TenantAddress}}</div>{{end}}
      </div>
    </div>

    <div style="margin-top:14px">
      <p>
        Par la présente, je vous mets <span class="k">formellement en demeure</span> de procéder au règlement du loyer
        relatif à la période <span class="k">{{.Period}}</span>, échéance du <span class="k">{{.DueDate}}</span>,
        pour un montant de <span class="k">{{.Amount}} {{.Currency}}</span>.
      </p>

      <p>
        Vous disposez d’un délai de <span class="k">{{.GraceDays}} jours</span> à compter de la date d’émission
        de la présente pour régulariser, soit jusqu’au <span class="k">{{.Deadline}}</span>.
      </p>

      <p class="muted">
        À défaut de paiement dans le délai indiqué, le bailleur se réserve le droit d’engager toute procédure utile.
      </p>
    </div>
  </div>

  <div class="sig">Signature bailleur</div>

  <p class="muted" style="margin-top:24px">
    Document généré automatiquement. Version 1.0.
  </p>
</body>
</html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<!doctype html>
<html><head><meta charset="utf-8"/>
<style>
body{font-family:Arial,sans-serif;padding:32px;line-height:1.35}
h1{margin:0;font-size:20px}
.muted{color:#444;font-size:12px}
.box{border:1px solid #222;padding:16px;border-radius:8px;margin-top:16px}
.row{display:flex;justify-content:space-between;gap:16px}
.k{font-weight:bold}
.sig{margin-top:48px;border-top:1px solid #222;padding-top:8px;width:320px;font-size:12px}
</style></head>
<body>
<div class="row">
  <div>
    <h1>RELANCE AMIABLE</h1>
    <div class="muted">N° {{.ReminderNo}} · Émise le {{.IssuedAt}}</div>
  </div>
  <div class="muted" style="text-align:right">
    {{.PropertyLabel}} — {{.UnitLabel}}<br/>
    Période: {{.Period}}
  </div>
</div>

<div class="box">
  <div class="row">
    <div>
      <div class="k">Bailleur</div>
      <div>{{.LandlordName}}</div>
      {{if .LandlordAddress}}<div class="muted">{{.LandlordAddress}}</div>{{end}}
    </div>
    <div style="text-align:right">
      <div class="k">Locataire</div>
      <div>{{.TenantName}}</div>
      {{if .TenantAddress}}<div class="muted">{{.TenantAddress}}</div>{{end}}
    </div>
  </div>

  <div style="margin-top:14px">
    <p>
      Nous vous rappelons, en toute cordialité, que le loyer relatif à la période
      <span class="k">{{.Period}}</span> (échéance du <span class="k">{{.DueDate}}</span>)
      reste dû pour un montant de <span class="k">{{.Amount}} {{.Currency}}</span>.
    </p>

    <p>
      Nous vous remercions de bien vouloir régulariser sous <span class="k">{{.GraceDays}} jours</span>.
    </p>

    <p class="muted">
      Si le paiement a déjà été effectué, merci d’ignorer cette relance.
    </p>
  </div>
</div>

<div class="sig">Signature bailleur</div>
<p class="muted" style="margin-top:24px">Document généré automatiquement. Version 1.0.</p>
</body></html>`))

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Quittance {{.ReceiptNo}}</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 32px; }
    .header { display:flex; justify-content:space-between; align-items:flex-start; }
    .box { border:1px solid #222; padding:16px; border-radius:8px; margin-top:16px; }
    h1 { margin:0; font-size:20px; }
    .muted { color:#444; font-size:12px; }
    .row { display:flex; justify-content:space-between; gap:16px; }
    .k { font-weight:bold; }
    .sig { margin-top:40px; display:flex; justify-content:space-between; }
    .sig > div { width:45%; border-top:1px solid #222; padding-top:8px; font-size:12px; }
  </style>
</head>
<body>
  <div class="header">
    <div>
      <h1>QUITTANCE DE LOYER</h1>
      <div class="muted">N° {{.ReceiptNo}} · Émise le {{.IssuedAt}}</div>
    </div>
    <div class="muted" style="text-align:right">
      {{.PropertyLabel}} — {{.UnitLabel}}<br/>
      Période: {{.Period}}
    </div>
  </div>

  <div class="box">
    <div class="row">
      <div><span class="k">Bailleur:</span> {{.LandlordName}}</div>
      <div><span class="k">Locataire:</span> {{.TenantName}}</div>
      {{if .LandlordAddress}}<div class="muted">{{.LandlordAddress}}</div>{{end}}
      {{if .LandlordIDNumber}}<div class="muted">ICE/CIN: {{.LandlordIDNumber}}</div>{{end}}
    </div>
    <div style="margin-top:10px">
      <div><span class="k">Montant:</span> {{.Amount}} {{.Currency}}</div>
      <div><span class="k">Payé le:</span> {{.PaidAt}}</div>
    </div>
  </div>

  <div class="sig">
    <div>Signature bailleur</div>
    <div>Signature locataire</div>
  </div>

  <p class="muted" style="margin-top:24px">
    Document généré automatiquement. Version 1.0.
  </p>
</body>
</html>`))

func renderNoticeHTML(d NoticeData) (string, error) {
	var b strings.Builder
	if err := noticeTmpl.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderReminderHTML(d ReminderData) (string, error) {
	var b strings.Builder
	if err := reminderTmpl.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderReceiptHTML(d ReceiptData) (string, error) {
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}
