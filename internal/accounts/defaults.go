package accounts

import "github.com/cleared-dev/equity/internal/model"

// DefaultChart returns a chart of accounts for an Argentine SME. Its equity
// codes line up with the default column catalog.
func DefaultChart() []model.Account {
	return []model.Account{
		header("activo", "1", "Activo", model.KindAsset, model.SideDebit, "", 1),
		leaf("caja", "1.1.01.001", "Caja", model.KindAsset, model.SideDebit, "activo"),
		leaf("banco", "1.1.01.002", "Banco cuenta corriente", model.KindAsset, model.SideDebit, "activo"),
		leaf("deudores_ventas", "1.1.03.001", "Deudores por ventas", model.KindAsset, model.SideDebit, "activo"),
		leaf("bienes_uso", "1.2.01.001", "Bienes de uso", model.KindAsset, model.SideDebit, "activo"),

		header("pasivo", "2", "Pasivo", model.KindLiability, model.SideCredit, "", 1),
		leaf("proveedores", "2.1.01.001", "Proveedores", model.KindLiability, model.SideCredit, "pasivo"),
		leaf("dividendos_pagar", "2.1.06.001", "Dividendos a pagar", model.KindLiability, model.SideCredit, "pasivo"),

		header("patrimonio_neto", "3", "Patrimonio neto", model.KindEquity, model.SideCredit, "", 1),
		leaf("capital_suscripto", "3.1.01.001", "Capital suscripto", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("ajuste_capital", "3.1.02.001", "Ajuste de capital", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("aportes_irrevocables", "3.1.03.001", "Aportes irrevocables", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("primas_emision", "3.1.04.001", "Primas de emisión", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		contra("acciones_propias", "3.1.05.001", "Acciones propias en cartera", "patrimonio_neto"),
		leaf("reserva_legal", "3.2.01.001", "Reserva legal", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("reserva_estatutaria", "3.2.02.001", "Reserva estatutaria", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("reserva_facultativa", "3.2.03.001", "Reserva facultativa", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("reserva_revaluo", "3.2.04.001", "Reserva por revalúo", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("resultados_no_asignados", "3.3.01.001", "Resultados no asignados", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("resultado_ejercicio", "3.3.02.001", "Resultado del ejercicio", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("area", "3.3.03.001", "Ajuste de resultados de ejercicios anteriores", model.KindEquity, model.SideCredit, "patrimonio_neto"),
		leaf("dividendos_declarados", "3.3.04.001", "Dividendos declarados", model.KindEquity, model.SideDebit, "patrimonio_neto"),

		header("ingresos", "4", "Ingresos", model.KindIncome, model.SideCredit, "", 1),
		leaf("ventas", "4.1.01.001", "Ventas", model.KindIncome, model.SideCredit, "ingresos"),
		leaf("intereses_ganados", "4.2.01.001", "Intereses ganados", model.KindIncome, model.SideCredit, "ingresos"),

		header("egresos", "5", "Egresos", model.KindExpense, model.SideDebit, "", 1),
		leaf("costo_ventas", "5.1.01.001", "Costo de mercaderías vendidas", model.KindExpense, model.SideDebit, "egresos"),
		leaf("sueldos", "5.2.01.001", "Sueldos y cargas sociales", model.KindExpense, model.SideDebit, "egresos"),
		leaf("honorarios", "5.2.02.001", "Honorarios profesionales", model.KindExpense, model.SideDebit, "egresos"),
		leaf("alquileres", "5.2.03.001", "Alquileres", model.KindExpense, model.SideDebit, "egresos"),
	}
}

func header(id, code, name string, kind model.AccountKind, side model.Side, parent string, level int) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Kind: kind, NormalSide: side, IsHeader: true, ParentID: parent, Level: level}
}

func leaf(id, code, name string, kind model.AccountKind, side model.Side, parent string) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Kind: kind, NormalSide: side, ParentID: parent, Level: 2}
}

func contra(id, code, name, parent string) model.Account {
	a := leaf(id, code, name, model.KindEquity, model.SideDebit, parent)
	a.IsContra = true
	return a
}
