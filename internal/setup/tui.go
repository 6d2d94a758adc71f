package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mimercadove/cart-calculator/internal/domain"
	"github.com/mimercadove/cart-calculator/internal/format"
	"github.com/mimercadove/cart-calculator/internal/usecase/archive"
	"github.com/mimercadove/cart-calculator/internal/usecase/cart"
	"github.com/mimercadove/cart-calculator/internal/usecase/rate"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warn      = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	totalsStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(subtle)

	errorStyle = lipgloss.NewStyle().
			Foreground(warn).
			Bold(true)
)

// App wires the engine services behind the interactive terminal UI.
type App struct {
	Rates   *rate.Service
	Cart    *cart.Service
	Archive *archive.Service
	Logger  *zap.Logger
}

// Run drives the interactive loop until the user quits.
func (a *App) Run() error {
	fmt.Println(headerStyle.Render("MI MERCADO VE"))

	if !a.Rates.IsSet() {
		if err := a.promptRate(); err != nil {
			return err
		}
	}

	for {
		a.renderCart()

		var action string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Acción").
					Options(
						huh.NewOption("Agregar producto", "add"),
						huh.NewOption("Editar producto", "edit"),
						huh.NewOption("Eliminar producto", "remove"),
						huh.NewOption("Guardar carrito", "save"),
						huh.NewOption("Historial", "history"),
						huh.NewOption("Cambiar tasa", "rate"),
						huh.NewOption("Reset", "reset"),
						huh.NewOption("Salir", "quit"),
					).
					Value(&action),
			),
		).Run()
		if err != nil {
			return err
		}

		switch action {
		case "add":
			err = a.promptAdd()
		case "edit":
			err = a.promptEdit()
		case "remove":
			err = a.promptRemove()
		case "save":
			err = a.promptSaveCart()
		case "history":
			err = a.promptHistory()
		case "rate":
			err = a.promptRate()
		case "reset":
			err = a.promptReset()
		case "quit":
			return nil
		}

		if err != nil {
			a.report(err)
		}
	}
}

// report shows an engine failure to the user; the aggregate is always
// still in its previous valid state when this runs.
func (a *App) report(err error) {
	fmt.Println(errorStyle.Render(err.Error()))
	a.Logger.Warn("operation failed", zap.Error(err))
}

func (a *App) renderCart() {
	totalVES, totalUSD := a.Cart.Totals()

	fmt.Println(totalsStyle.Render(fmt.Sprintf("Totales: %s | %s",
		format.DecimalVES(totalVES), format.DecimalUSD(totalUSD))))

	if current, err := a.Rates.Current(); err == nil {
		fmt.Println(itemStyle.Render("Tasa: " + format.Rate(current)))
	}

	for _, item := range a.Cart.Items() {
		fmt.Println(itemStyle.Render("  " + describeItem(item)))
	}
	fmt.Println()
}

func describeItem(item domain.LineItem) string {
	detail := ""
	switch item.Mode {
	case domain.PricingModeWeight:
		detail = fmt.Sprintf("%s kg × %s/kg", item.Weight.String(), format.DecimalVES(item.PricePerKgVES))
	default:
		detail = fmt.Sprintf("%d × %s", item.Quantity, format.DecimalVES(item.UnitVES))
	}

	return fmt.Sprintf("%s (%s) — %s / %s",
		item.Description, detail, format.DecimalVES(item.VES), format.DecimalUSD(item.USD))
}

func (a *App) promptRate() error {
	var rateInput string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tasa de cambio (Bs. por $)").
				Placeholder("36.50").
				Value(&rateInput),
		),
	).Run()
	if err != nil {
		return err
	}

	if _, err := a.Rates.Set(rateInput); err != nil {
		return err
	}

	return nil
}

func (a *App) promptAdd() error {
	var (
		weightBased bool
		description string
		vesInput    string
		usdInput    string
		quantity    = "1"
		weight      string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Precio por peso?").
				Affirmative("Peso").
				Negative("Unidad").
				Value(&weightBased),
			huh.NewInput().Title("Descripción").Value(&description),
			huh.NewInput().Title("Precio en Bs. (vacío si usas $)").Value(&vesInput),
			huh.NewInput().Title("Precio en $ (vacío si usas Bs.)").Value(&usdInput),
		),
	).Run()
	if err != nil {
		return err
	}

	if weightBased {
		err = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Peso (kg)").Value(&weight),
		)).Run()
		if err != nil {
			return err
		}

		_, err = a.Cart.AddWeight(cart.AddWeightInput{
			Description: description,
			VESInput:    vesInput,
			USDInput:    usdInput,
			WeightInput: weight,
		})
		return err
	}

	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Cantidad").Value(&quantity),
	)).Run()
	if err != nil {
		return err
	}

	_, err = a.Cart.AddUnit(cart.AddUnitInput{
		Description:   description,
		VESInput:      vesInput,
		USDInput:      usdInput,
		QuantityInput: quantity,
	})
	return err
}

func (a *App) pickItem(title string) (domain.LineItem, bool, error) {
	items := a.Cart.Items()
	if len(items) == 0 {
		return domain.LineItem{}, false, nil
	}

	options := make([]huh.Option[string], 0, len(items)+1)
	for _, item := range items {
		options = append(options, huh.NewOption(describeItem(item), item.ID.String()))
	}
	options = append(options, huh.NewOption("Cancelar", ""))

	var picked string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title(title).Options(options...).Value(&picked),
		),
	).Run()
	if err != nil || picked == "" {
		return domain.LineItem{}, false, err
	}

	id, err := uuid.Parse(picked)
	if err != nil {
		return domain.LineItem{}, false, err
	}

	for _, item := range items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return domain.LineItem{}, false, nil
}

func (a *App) promptEdit() error {
	item, ok, err := a.pickItem("Producto a editar")
	if err != nil || !ok {
		return err
	}

	input := cart.EditInput{
		ID:          item.ID,
		Description: item.Description,
	}

	var priceCurrency string
	group := []huh.Field{
		huh.NewInput().Title("Descripción").Value(&input.Description),
	}

	if item.Mode == domain.PricingModeWeight {
		input.WeightInput = item.Weight.String()
		input.PriceInput = item.PricePerKgVES.String()
		group = append(group,
			huh.NewInput().Title("Peso (kg)").Value(&input.WeightInput),
			huh.NewInput().Title("Precio por kg").Value(&input.PriceInput),
		)
	} else {
		input.QuantityInput = fmt.Sprintf("%d", item.Quantity)
		input.PriceInput = item.UnitVES.String()
		group = append(group,
			huh.NewInput().Title("Cantidad").Value(&input.QuantityInput),
			huh.NewInput().Title("Precio unitario").Value(&input.PriceInput),
		)
	}

	group = append(group,
		huh.NewSelect[string]().
			Title("Moneda del precio").
			Options(
				huh.NewOption("Bolívares", string(domain.CurrencyVES)),
				huh.NewOption("Dólares", string(domain.CurrencyUSD)),
			).
			Value(&priceCurrency),
	)

	if err := huh.NewForm(huh.NewGroup(group...)).Run(); err != nil {
		return err
	}

	input.PriceCurrency = domain.Currency(priceCurrency)
	return a.Cart.Edit(input)
}

func (a *App) promptRemove() error {
	item, ok, err := a.pickItem("Producto a eliminar")
	if err != nil || !ok {
		return err
	}
	return a.Cart.Remove(item.ID)
}

func (a *App) promptReset() error {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Vaciar el carrito? Esta acción no se puede deshacer.").
				Value(&confirmed),
		),
	).Run()
	if err != nil || !confirmed {
		return err
	}
	return a.Cart.Reset()
}

func (a *App) promptSaveCart() error {
	var (
		name     string
		cartType string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre del carrito").Value(&name),
			huh.NewSelect[string]().
				Title("Tipo").
				Options(
					huh.NewOption("Compra", string(domain.CartTypePurchase)),
					huh.NewOption("Presupuesto", string(domain.CartTypeBudget)),
				).
				Value(&cartType),
		),
	).Run()
	if err != nil {
		return err
	}

	currentRate, err := a.Rates.Current()
	if err != nil {
		return err
	}

	saved, err := a.Archive.Save(name, domain.CartType(cartType), a.Cart.Aggregate(), currentRate)
	if err != nil {
		return err
	}

	fmt.Println(totalsStyle.Render(fmt.Sprintf("Guardado %q (%s)", saved.Name, saved.Type)))
	return nil
}

func (a *App) promptHistory() error {
	var filter string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Historial").
				Options(
					huh.NewOption("Todos", ""),
					huh.NewOption("Compras", string(domain.CartTypePurchase)),
					huh.NewOption("Presupuestos", string(domain.CartTypeBudget)),
				).
				Value(&filter),
		),
	).Run()
	if err != nil {
		return err
	}

	carts := a.Archive.List(domain.CartType(filter))
	if len(carts) == 0 {
		fmt.Println(itemStyle.Render("No hay carritos guardados."))
		return nil
	}

	options := make([]huh.Option[string], 0, len(carts)+1)
	for _, c := range carts {
		label := fmt.Sprintf("%s (%s) %s — %s / %s",
			c.Name, c.Type, c.CreatedAt.Format("2006-01-02 15:04"),
			format.VES(c.TotalVES), format.USD(c.TotalUSD))
		options = append(options, huh.NewOption(label, c.ID.String()))
	}
	options = append(options, huh.NewOption("Volver", ""))

	var picked string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Carrito").Options(options...).Value(&picked),
		),
	).Run()
	if err != nil || picked == "" {
		return err
	}

	id, err := uuid.Parse(picked)
	if err != nil {
		return err
	}

	return a.showSavedCart(id)
}

func (a *App) showSavedCart(id uuid.UUID) error {
	saved, err := a.Archive.Get(id)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(saved.Name))
	fmt.Println(itemStyle.Render(fmt.Sprintf("Tasa: %.2f — %s", saved.ExchangeRate, saved.CreatedAt.Format("2006-01-02 15:04"))))
	for _, item := range saved.Items {
		fmt.Println(itemStyle.Render("  " + describeItem(item)))
	}
	fmt.Println(totalsStyle.Render(fmt.Sprintf("Total: %s / %s", format.VES(saved.TotalVES), format.USD(saved.TotalUSD))))

	var deleteIt bool
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("¿Eliminar este carrito guardado?").Value(&deleteIt),
		),
	).Run()
	if err != nil || !deleteIt {
		return err
	}

	return a.Archive.Delete(id)
}
